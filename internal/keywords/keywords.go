// Package keywords matches fixed vocabularies against free text using an
// Aho-Corasick automaton.
package keywords

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Set is a case-insensitive substring vocabulary. Safe for concurrent use.
type Set struct {
	mu      sync.Mutex
	words   []string
	matcher *ahocorasick.Matcher
}

// New builds a Set. Words are lowercased; empty words are ignored.
func New(words ...string) *Set {
	s := &Set{}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s.words = append(s.words, w)
		}
	}
	if len(s.words) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.words)
	}
	return s
}

// Matches returns the words found anywhere in text, in registration order.
func (s *Set) Matches(text string) []string {
	if s.matcher == nil || text == "" {
		return nil
	}
	s.mu.Lock()
	hits := s.matcher.Match([]byte(strings.ToLower(text)))
	s.mu.Unlock()
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		seen[h] = true
	}
	var out []string
	for i, w := range s.words {
		if seen[i] {
			out = append(out, w)
		}
	}
	return out
}

// ContainsAny reports whether any word occurs in any of texts.
func (s *Set) ContainsAny(texts ...string) bool {
	for _, t := range texts {
		if len(s.Matches(t)) > 0 {
			return true
		}
	}
	return false
}
