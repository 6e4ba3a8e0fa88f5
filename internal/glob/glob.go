// Package glob compares single path components against shell wildcard
// patterns and provides the path helpers the tree search is built on.
//
// Components support the shell syntax: '*' matches any run of characters,
// '?' matches one character, '[...]' and '[!...]' match character classes,
// and a backslash quotes the next character. Braces have no special meaning.
package glob

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gobwas "github.com/gobwas/glob"
)

// ErrMalformedPattern is returned when a component cannot be compiled.
var ErrMalformedPattern = errors.New("malformed pattern")

// Result is the outcome of comparing a component against a name.
type Result int

const (
	// NoMatch means the name does not satisfy the component.
	NoMatch Result = iota
	// Match means the name satisfies the component.
	Match
)

// String returns the string representation of Result.
func (r Result) String() string {
	if r == Match {
		return "match"
	}
	return "no match"
}

// PatternError carries the component that failed to compile.
type PatternError struct {
	Component string
	Err       error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrMalformedPattern, e.Component, e.Err)
}

// Unwrap lets errors.Is match ErrMalformedPattern.
func (e *PatternError) Unwrap() []error {
	return []error{ErrMalformedPattern, e.Err}
}

// Matcher compiles components on first use and caches them.
type Matcher struct {
	mu    sync.Mutex
	cache map[string]gobwas.Glob
}

// NewMatcher returns an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{cache: make(map[string]gobwas.Glob)}
}

// Compare reports whether name satisfies the component pattern.
func (m *Matcher) Compare(pattern, name string) (Result, error) {
	g, err := m.compile(pattern)
	if err != nil {
		return NoMatch, err
	}
	if g.Match(name) {
		return Match, nil
	}
	return NoMatch, nil
}

// Validate compiles every wildcard component of a full pattern so that a
// malformed pattern is rejected before any directory is read.
func (m *Matcher) Validate(pattern string) error {
	rest := pattern
	for {
		var first string
		first, rest = SplitFirst(rest)
		if first == "" {
			return nil
		}
		if !HasWildcards(first) {
			continue
		}
		if _, err := m.compile(first); err != nil {
			return err
		}
	}
}

func (m *Matcher) compile(pattern string) (gobwas.Glob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.cache[pattern]; ok {
		return g, nil
	}
	g, err := gobwas.Compile(translate(pattern))
	if err != nil {
		return nil, &PatternError{Component: pattern, Err: err}
	}
	m.cache[pattern] = g
	return g, nil
}

// translate rewrites shell syntax into the dialect understood by gobwas:
// braces are quoted and a leading '^' in a class becomes '!'.
func translate(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
		case inClass:
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				b.WriteByte('!')
				i++
			}
		case c == '{' || c == '}':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// HasWildcards reports whether component contains an unquoted '*', '?'
// or '['.
func HasWildcards(component string) bool {
	for i := 0; i < len(component); i++ {
		switch component[i] {
		case '\\':
			i++
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// Unescape removes backslash quoting from a wildcard-free component.
func Unescape(component string) string {
	if !strings.ContainsRune(component, '\\') {
		return component
	}
	var b strings.Builder
	b.Grow(len(component))
	for i := 0; i < len(component); i++ {
		if component[i] == '\\' && i+1 < len(component) {
			i++
		}
		b.WriteByte(component[i])
	}
	return b.String()
}

// Escape quotes every wildcard character in name so it can be used as a
// literal pattern component.
func Escape(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
