package literal

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/itsmostafa/pagegen/internal/section"
)

var headerTemplate = template.Must(template.New("header").Parse(`#include <vector>
#include <string>
struct {{.RecordType}} {
  std::string type, name;
  std::string content;
  std::vector<{{.RecordType}}> subs;
};

extern const std::vector<{{.RecordType}}> {{.Variable}};
`))

var sourceTemplate = template.Must(template.New("source").Parse(`#include "{{.HeaderFile}}"
const std::vector<{{.RecordType}}> {{.Variable}} = {
{{.Entries}}
};
`))

// Declaration names the generated header and the symbols it declares.
type Declaration struct {
	HeaderFile string
	RecordType string
	Variable   string
}

// DefaultDeclaration matches the names the web UI includes.
func DefaultDeclaration() Declaration {
	return Declaration{
		HeaderFile: "page.h",
		RecordType: "p_entry",
		Variable:   "page_html",
	}
}

// Artifacts holds the rendered header and source files.
type Artifacts struct {
	Header []byte
	Source []byte
}

// Render produces the header declaring the table and the source defining it
// with one record per top-level node.
func (s *Serializer) Render(decl Declaration, nodes []*section.Node) (*Artifacts, error) {
	data := struct {
		Declaration
		Entries string
	}{
		Declaration: decl,
		Entries:     s.SerializeAll(nodes, s.Indent),
	}

	var header, source bytes.Buffer
	if err := headerTemplate.Execute(&header, data); err != nil {
		return nil, fmt.Errorf("render header: %w", err)
	}
	if err := sourceTemplate.Execute(&source, data); err != nil {
		return nil, fmt.Errorf("render source: %w", err)
	}

	return &Artifacts{Header: header.Bytes(), Source: source.Bytes()}, nil
}
