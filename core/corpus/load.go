package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ErrEmptyCorpus is returned when no line of the input survives the
// length filters.
var ErrEmptyCorpus = errors.New("corpus contains no valid document")

// Open opens filename for reading.  Files ending in .gz and .zst are
// decompressed transparently.
func Open(filename string) (io.ReadCloser, error) {
	f, e := os.Open(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "open %s", filename)
	}
	switch path.Ext(filename) {
	case ".gz":
		r, e := gzip.NewReader(f)
		if e != nil {
			f.Close()
			return nil, errors.Wrapf(e, "gzip %s", filename)
		}
		return &stacked{r, []io.Closer{r, f}}, nil
	case ".zst":
		d, e := zstd.NewReader(f)
		if e != nil {
			f.Close()
			return nil, errors.Wrapf(e, "zstd %s", filename)
		}
		return &stacked{d, []io.Closer{d.IOReadCloser(), f}}, nil
	}
	return f, nil
}

// Create opens filename for writing, compressing by extension like
// Open.
func Create(filename string) (io.WriteCloser, error) {
	f, e := os.Create(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "create %s", filename)
	}
	switch path.Ext(filename) {
	case ".gz":
		w := gzip.NewWriter(f)
		return &stackedWriter{w, []io.Closer{w, f}}, nil
	case ".zst":
		w, e := zstd.NewWriter(f)
		if e != nil {
			f.Close()
			return nil, errors.Wrapf(e, "zstd %s", filename)
		}
		return &stackedWriter{w, []io.Closer{w, f}}, nil
	}
	return f, nil
}

type stacked struct {
	io.Reader
	closers []io.Closer
}

func (s *stacked) Close() error {
	return closeAll(s.closers)
}

type stackedWriter struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriter) Close() error {
	return closeAll(s.closers)
}

func closeAll(cs []io.Closer) error {
	var first error
	for _, c := range cs {
		if e := c.Close(); e != nil && first == nil {
			first = e
		}
	}
	return first
}

// Load reads one document per line.  Documents shorter than minLen or
// longer than maxLen are skipped; a non-positive bound disables that
// filter.  It returns the kept documents and the number of lines
// scanned.
func Load(r io.Reader, vocab *Vocabulary, grow bool, minLen, maxLen int) ([]*Document, int, error) {
	docs := make([]*Document, 0)
	scanned := 0
	s := bufio.NewReader(r)
	for {
		line, e := s.ReadString('\n')
		if e != nil && e != io.EOF {
			return nil, scanned, errors.Wrap(e, "reading corpus")
		}
		if len(line) > 0 || e == nil {
			scanned++
			d := NewDocument(strings.Fields(line), vocab, grow)
			if d.Len() > 0 &&
				(minLen <= 0 || d.Len() >= minLen) &&
				(maxLen <= 0 || d.Len() <= maxLen) {
				docs = append(docs, d)
			}
		}
		if e == io.EOF {
			break
		}
	}
	if len(docs) == 0 {
		return nil, scanned, ErrEmptyCorpus
	}
	return docs, scanned, nil
}

// Write writes docs one per line, in the format Load reads.
func Write(w io.Writer, docs []*Document, vocab *Vocabulary) error {
	bw := bufio.NewWriter(w)
	for _, d := range docs {
		if _, e := fmt.Fprintln(bw, strings.Join(d.Tokens(vocab), " ")); e != nil {
			return errors.Wrap(e, "writing corpus")
		}
	}
	return bw.Flush()
}
