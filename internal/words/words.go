// apps/go-server/internal/words/words.go
//
// Dictionary collaborators for the word chain validator.
//
// Responsibilities:
//   - Define the read-only membership contract (Dictionary).
//   - Provide a set-backed implementation and a union over several sets.
//   - Normalize words the same way on both sides of a lookup.
//
// Sets are built once and never mutated afterwards, so they are safe for
// concurrent readers without locking.

package words

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Dictionary answers membership queries for lowercase, normalized words.
type Dictionary interface {
	Contains(word string) bool
}

// Normalize trims, lowercases and NFC-composes s so that "Árbol" and
// "árbol" both become "árbol".
func Normalize(s string) string {
	return norm.NFC.String(cases.Lower(language.Und).String(strings.TrimSpace(s)))
}

// Set is an immutable word set.
type Set struct {
	name string
	m    map[string]struct{}
}

// NewSet builds a Set from list, normalizing every entry and skipping blanks.
func NewSet(name string, list []string) *Set {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		if w = Normalize(w); w != "" {
			m[w] = struct{}{}
		}
	}
	return &Set{name: name, m: m}
}

// Contains reports whether w (normalized) is in the set.
func (s *Set) Contains(w string) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[Normalize(w)]
	return ok
}

// Name is the label the set was built with (e.g. "es").
func (s *Set) Name() string { return s.name }

// Len returns the number of distinct words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Union matches a word present in any of its members.
type Union []Dictionary

// Contains reports whether any member contains w.
func (u Union) Contains(w string) bool {
	for _, d := range u {
		if d != nil && d.Contains(w) {
			return true
		}
	}
	return false
}
