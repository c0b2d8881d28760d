// Package vocab provides controlled-vocabulary string values.
//
// A vocabulary names a set of well-known terms. Values are open by
// default: a String carrying a term outside its vocabulary is still a
// usable value, so documents produced by tools with extended term sets
// keep round-tripping. Callers that need a closed vocabulary check with
// Strict.
package vocab

import (
	"sort"
	"sync"

	"github.com/zero-day-ai/obsgraph"
)

// String is a string value drawn from a named controlled vocabulary.
// The zero String carries no value and no vocabulary.
type String struct {
	// Value is the term itself.
	Value string `json:"value" yaml:"value"`

	// Vocabulary names the vocabulary the term is drawn from. Empty for
	// free-form strings.
	Vocabulary string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
}

// IsZero returns true if the String carries no value.
func (s String) IsZero() bool {
	return s.Value == ""
}

// String returns the term text.
func (s String) String() string {
	return s.Value
}

// IsKnown returns true if the value is one of its vocabulary's terms.
// Values with no vocabulary, or a vocabulary this package does not know,
// report false.
func (s String) IsKnown() bool {
	mu.RLock()
	defer mu.RUnlock()
	terms, ok := vocabularies[s.Vocabulary]
	return ok && terms[s.Value]
}

// Strict returns an error if the value's vocabulary is known and the
// value is not one of its terms. Free-form values and unknown
// vocabularies pass, keeping the open-by-default behavior.
func (s String) Strict() error {
	mu.RLock()
	defer mu.RUnlock()

	terms, ok := vocabularies[s.Vocabulary]
	if !ok {
		return nil
	}
	if !terms[s.Value] {
		return obsgraph.NewMalformedValueError("vocab.Strict", s.Vocabulary, s.Value, 0, nil)
	}
	return nil
}

var (
	mu           sync.RWMutex
	vocabularies = map[string]map[string]bool{}
)

// RegisterVocabulary records the term set for a named vocabulary so
// Strict and IsKnown can check against it. Registering the same name
// again extends the term set.
func RegisterVocabulary(name string, terms ...string) {
	mu.Lock()
	defer mu.Unlock()

	set := vocabularies[name]
	if set == nil {
		set = make(map[string]bool, len(terms))
		vocabularies[name] = set
	}
	for _, t := range terms {
		set[t] = true
	}
}

// Terms returns the sorted term set of a registered vocabulary, or nil
// if the vocabulary is unknown.
func Terms(name string) []string {
	mu.RLock()
	defer mu.RUnlock()

	set, ok := vocabularies[name]
	if !ok {
		return nil
	}
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
