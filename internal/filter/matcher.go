package filter

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Matcher decides whether the quote-stripped first column of a data
// row satisfies the search term. The term is bound at construction.
type Matcher interface {
	Matches(field0 string) bool
}

// Probe reports whether the fast literal matcher is usable in the
// current environment. It is injected at construction so tests can
// pin either backend.
type Probe func() bool

// DefaultProbe enables the fast literal matcher unless
// CSVSEEK_PORTABLE_MATCH is set in the environment.
func DefaultProbe() bool {
	return os.Getenv("CSVSEEK_PORTABLE_MATCH") == ""
}

// NewMatcher selects a matching backend for a fixed-string term. The
// fast backend is a case-insensitive literal scan; the fallback is a
// case-insensitive regexp with the term's metacharacters quoted, so
// the two backends return identical match sets for every term.
// Backend selection is a capability decision, never a semantic one;
// pattern terms go through NewRegexpMatcher instead. A nil probe
// means DefaultProbe.
func NewMatcher(term string, probe Probe) (Matcher, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: empty search term", ErrInvalidArgument)
	}
	if probe == nil {
		probe = DefaultProbe
	}
	if probe() {
		return NewLiteralMatcher(term), nil
	}
	return NewRegexpMatcher(regexp.QuoteMeta(term))
}

type literalMatcher struct {
	term string
}

// NewLiteralMatcher returns the fast backend: case-insensitive
// substring containment.
func NewLiteralMatcher(term string) Matcher {
	return literalMatcher{term: strings.ToLower(term)}
}

func (m literalMatcher) Matches(field0 string) bool {
	return strings.Contains(strings.ToLower(field0), m.term)
}

type regexpMatcher struct {
	re *regexp.Regexp
}

// NewRegexpMatcher returns a case-insensitive regexp matcher over
// the raw term. It backs --regex, where the term really is a
// pattern; NewMatcher quotes fixed-string terms before handing them
// here.
func NewRegexpMatcher(term string) (Matcher, error) {
	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	return regexpMatcher{re: re}, nil
}

func (m regexpMatcher) Matches(field0 string) bool {
	return m.re.MatchString(field0)
}
