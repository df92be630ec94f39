package section

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxDepth bounds how deeply regions may nest before Build gives up.
const DefaultMaxDepth = 512

// ErrDepthExceeded is returned when regions nest deeper than the builder's
// MaxDepth.
var ErrDepthExceeded = errors.New("section nesting too deep")

// DefaultKinds are the marker kinds pages are tagged with, highest priority
// first.
var DefaultKinds = []string{"SECTION", "LIST"}

// Builder turns documents into section trees.
type Builder struct {
	// Kinds are the marker kinds in priority order.
	Kinds []string
	// MaxDepth limits recursion. Zero means DefaultMaxDepth.
	MaxDepth int
	// Timeout bounds a single regex match attempt. Zero means no limit.
	Timeout time.Duration
	// WrapPlain keeps every untagged span as a container, even one holding a
	// single leaf. This is the shape the original page tables were generated
	// with; by default such spans collapse to the leaf itself.
	WrapPlain bool

	splitter *Splitter
}

// NewBuilder returns a Builder for the given marker kinds.
func NewBuilder(kinds []string) *Builder {
	return &Builder{
		Kinds:    kinds,
		MaxDepth: DefaultMaxDepth,
	}
}

// Build is shorthand for NewBuilder(kinds).Build(fragment).
func Build(kinds []string, fragment string) ([]*Node, error) {
	return NewBuilder(kinds).Build(fragment)
}

// Parse builds the tree for a whole document and returns its plain root.
func (b *Builder) Parse(doc string) (*Node, error) {
	nodes, err := b.Build(doc)
	if err != nil {
		return nil, err
	}
	return &Node{Subsections: nodes}, nil
}

// Build splits fragment into its top-level sequence of nodes. When no kind
// matches, the result is a single leaf holding fragment verbatim. Otherwise
// it alternates plain and tagged nodes, starting and ending with plain, and
// has 2N+1 entries for N regions of the first matching kind.
func (b *Builder) Build(fragment string) ([]*Node, error) {
	if b.splitter == nil {
		b.splitter = NewSplitter()
		b.splitter.Timeout = b.Timeout
	}
	return b.build(b.Kinds, fragment, 0)
}

func (b *Builder) build(kinds []string, fragment string, depth int) ([]*Node, error) {
	limit := b.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if depth > limit {
		return nil, fmt.Errorf("%w: limit is %d", ErrDepthExceeded, limit)
	}

	// Drop kinds that do not occur until one matches or none are left.
	for len(kinds) > 0 {
		regions, err := b.splitter.Split(kinds[0], fragment)
		if err != nil {
			return nil, err
		}
		if len(regions) > 0 {
			return b.interleave(kinds, fragment, regions, depth)
		}
		kinds = kinds[1:]
	}

	return []*Node{NewLeaf(fragment)}, nil
}

func (b *Builder) interleave(kinds []string, fragment string, regions []Region, depth int) ([]*Node, error) {
	gaps := gapRanges(regions, len(fragment))
	qualifier := strings.ToLower(kinds[0])

	nodes := make([]*Node, 0, 2*len(regions)+1)
	for i, gap := range gaps {
		children, err := b.build(kinds, fragment[gap.start:gap.end], depth+1)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, b.plain(children))

		if i == len(regions) {
			break
		}

		r := regions[i]
		children, err = b.build(kinds, r.Body, depth+1)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Node{
			Qualifier:   qualifier,
			Name:        r.Name,
			Subsections: children,
		})
	}
	return nodes, nil
}

// plain wraps the nodes of an untagged span. Unless WrapPlain is set, a span
// without regions is emitted as its leaf directly.
func (b *Builder) plain(children []*Node) *Node {
	if !b.WrapPlain && len(children) == 1 && children[0].IsPlain() && children[0].IsLeaf() {
		return children[0]
	}
	return &Node{Subsections: children}
}

type span struct {
	start, end int
}

// gapRanges returns the untagged spans around regions: one before the first
// region, one between each pair and one after the last. Regions must be in
// document order and non-overlapping.
func gapRanges(regions []Region, length int) []span {
	gaps := make([]span, 0, len(regions)+1)
	pos := 0
	for _, r := range regions {
		gaps = append(gaps, span{start: pos, end: r.Start})
		pos = r.End
	}
	return append(gaps, span{start: pos, end: length})
}
