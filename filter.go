package rubidium

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Filter selects which registered functions execute. Benchmarks are matched
// on their flat name, tests on their full path: benchmarks are flat, tests
// nest.
type Filter struct {
	raw string
	re  *regexp.Regexp
}

func NewFilter(pattern string) (*Filter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newDerivedError(ErrContract, errors.Wrapf(err, "rubidium: invalid filter %q", pattern))
	}
	return &Filter{raw: pattern, re: re}, nil
}

// MatchAll returns the default filter, which selects everything.
func MatchAll() *Filter {
	f, err := NewFilter("")
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Filter) MatchBench(name string) bool {
	return f.re.MatchString(name)
}

// MatchTest matches path against the pattern. Ancestors of a literal target
// path also match, so a nested target stays reachable through its enclosing
// test bodies.
func (f *Filter) MatchTest(path string) bool {
	if f.re.MatchString(path) {
		return true
	}
	return strings.HasPrefix(f.raw, path+Separator)
}
