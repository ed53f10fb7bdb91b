package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/godist/canopy/core/registry"
)

// Vocabulary maintains the bi-directional mapping between strings and
// ids.  Ids are dense in [0, N), where N is the vocabulary size, and
// follow the order in which tokens are first seen.
type Vocabulary struct {
	reg    *registry.Registry[string]
	tokens []string
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{reg: registry.New[string]()}
}

// Load appends the first column of every non-empty line.
func (v *Vocabulary) Load(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		fs := strings.Fields(scanner.Text())
		if len(fs) > 0 {
			v.IdFor(fs[0])
		}
	}
	return scanner.Err()
}

// IdFor returns the id of token, allocating one on first sight.
func (v *Vocabulary) IdFor(token string) int32 {
	id := v.reg.Add(token)
	if id == len(v.tokens) {
		v.tokens = append(v.tokens, token)
	}
	return int32(id)
}

// Id returns the index of token.  If token is not in the vocabulary,
// it returns a negative value.
func (v *Vocabulary) Id(token string) int32 {
	return int32(v.reg.ID(token))
}

func (v *Vocabulary) Token(id int32) string {
	if int(id) < 0 || int(id) >= len(v.tokens) {
		panic(fmt.Sprintf("id=%d out of range [0, %d)", id, len(v.tokens)))
	}
	return v.tokens[id]
}

func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns tokens indexed by id.  The slice must not be
// modified.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}
