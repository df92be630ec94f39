package section

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Region is one tagged span found by a Splitter. Start and End are byte
// offsets into the fragment that was split and cover the whole construct,
// delimiters included. Name and Body are cut from the fragment's own bytes,
// so text that is not valid UTF-8 is kept as is.
type Region struct {
	Name  string
	Body  string
	Start int
	End   int
}

// Splitter finds the tagged regions of a single marker kind.
//
// The body of a region is matched lazily, so it ends at the first closing
// token after the opening one. Regions of the same kind nested inside each
// other are therefore not balanced: the outer region ends at the inner
// region's closing token. Only regions of different kinds nest correctly.
//
// A Splitter caches compiled patterns and is not safe for concurrent use.
type Splitter struct {
	// Timeout bounds a single match attempt. Zero means no limit.
	Timeout time.Duration

	patterns map[string]*regexp2.Regexp
}

// NewSplitter returns a Splitter with no match timeout.
func NewSplitter() *Splitter {
	return &Splitter{patterns: make(map[string]*regexp2.Regexp)}
}

// Pattern returns the expression that matches regions of kind.
func Pattern(kind string) string {
	k := regexp2.Escape(kind)
	return `\{` + k + `:([^}]+)\}(.*?)\{/` + k + `\}`
}

func (s *Splitter) compile(kind string) (*regexp2.Regexp, error) {
	if s.patterns == nil {
		s.patterns = make(map[string]*regexp2.Regexp)
	}
	if re, ok := s.patterns[kind]; ok {
		return re, nil
	}
	if strings.TrimSpace(kind) == "" {
		return nil, fmt.Errorf("blank marker kind")
	}

	re, err := regexp2.Compile(Pattern(kind), regexp2.Singleline)
	if err != nil {
		return nil, fmt.Errorf("compile pattern for %q: %w", kind, err)
	}
	if s.Timeout > 0 {
		re.MatchTimeout = s.Timeout
	}
	s.patterns[kind] = re
	return re, nil
}

// Split returns the regions of kind in fragment, left to right and
// non-overlapping. An empty result means the kind does not occur.
func (s *Splitter) Split(kind, fragment string) ([]Region, error) {
	re, err := s.compile(kind)
	if err != nil {
		return nil, err
	}

	var regions []Region
	var offsets []int
	m, err := re.FindStringMatch(fragment)
	for m != nil && err == nil {
		if offsets == nil {
			offsets = byteOffsets(fragment)
		}
		name := m.GroupByNumber(1)
		body := m.GroupByNumber(2)
		regions = append(regions, Region{
			Name:  fragment[offsets[name.Index]:offsets[name.Index+name.Length]],
			Body:  fragment[offsets[body.Index]:offsets[body.Index+body.Length]],
			Start: offsets[m.Index],
			End:   offsets[m.Index+m.Length],
		})
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("match %s regions: %w", kind, err)
	}
	return regions, nil
}

// byteOffsets maps each character index of s to its byte offset, with one
// extra entry for len(s). An invalid byte counts as one character, the same
// way the regex engine decodes its input.
func byteOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(offsets, len(s))
}
