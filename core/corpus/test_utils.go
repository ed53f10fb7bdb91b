package corpus

import "strings"

const testingV = 4

// CreateTestingVocabulary creates a vocabulary with testingV tokens:
// apple=0, orange=1, cat=2, tiger=3.
func CreateTestingVocabulary() (*Vocabulary, error) {
	r := strings.NewReader("apple 100\norange	whatever\n\ncat\ntiger")
	v := NewVocabulary()
	e := v.Load(r)
	return v, e
}

// CreateTestingCorpus returns two fruit documents and two animal
// documents over CreateTestingVocabulary.
func CreateTestingCorpus() ([]*Document, *Vocabulary) {
	v, e := CreateTestingVocabulary()
	if e != nil {
		panic("CreateTestingCorpus failed at CreateTestingVocabulary")
	}
	return []*Document{
		NewDocument(strings.Fields("apple orange apple"), v, false),
		NewDocument(strings.Fields("orange apple"), v, false),
		NewDocument(strings.Fields("cat tiger tiger"), v, false),
		NewDocument(strings.Fields("tiger cat"), v, false),
	}, v
}
