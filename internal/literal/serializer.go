package literal

import (
	"strings"

	"github.com/itsmostafa/pagegen/internal/section"
)

// DefaultIndent is the number of spaces each nesting level is indented by.
const DefaultIndent = 4

// Serializer renders nodes as brace-initialized records of the form
//
//	{"type", "name", "content", {children...}}
type Serializer struct {
	Escape Escaper
	Indent int
}

// NewSerializer returns a Serializer producing C++ string literals.
func NewSerializer() *Serializer {
	return &Serializer{Escape: EscapeC, Indent: DefaultIndent}
}

// Serialize renders n and its subsections.
func (s *Serializer) Serialize(n *section.Node) string {
	var sb strings.Builder
	s.write(&sb, n, 0)
	return sb.String()
}

// SerializeAll renders nodes as the elements of an initializer list, one
// record per element, separated by commas.
func (s *Serializer) SerializeAll(nodes []*section.Node, depth int) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(",\n")
		}
		s.write(&sb, n, depth)
	}
	return sb.String()
}

func (s *Serializer) write(sb *strings.Builder, n *section.Node, depth int) {
	escape := s.Escape
	if escape == nil {
		escape = EscapeC
	}
	lead := strings.Repeat(" ", depth)

	sb.WriteString(lead)
	sb.WriteString(`{"`)
	sb.WriteString(escape(n.Type()))
	sb.WriteString(`", "`)
	sb.WriteString(escape(n.ShortName()))
	sb.WriteString(`", "`)
	sb.WriteString(escape(n.Content))
	sb.WriteString(`", {`)

	if len(n.Subsections) == 0 {
		sb.WriteString("}}")
		return
	}

	sb.WriteString("\n")
	for _, child := range n.Subsections {
		s.write(sb, child, depth+s.Indent)
		sb.WriteString(",\n")
	}
	sb.WriteString(lead)
	sb.WriteString("}}")
}
