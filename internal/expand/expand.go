// Package expand renders a section tree back into a page for one selected
// section, repeating list regions once per item of a variable list.
package expand

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itsmostafa/pagegen/internal/section"
)

const (
	// TypeSection marks regions that are shown only when selected.
	TypeSection = "section"
	// TypeList marks regions repeated once per list item.
	TypeList = "list"
)

// ErrUnknownList is returned when a list region has no variables.
var ErrUnknownList = errors.New("unknown list")

// Vars is one list item: placeholder names mapped to their values.
type Vars map[string]string

// Lists maps list names to their items.
type Lists map[string][]Vars

// LoadLists reads list variables from a YAML file shaped like
//
//	device_status:
//	  - {PLUG_ID: "0", PLUG_NAME: lamp}
func LoadLists(path string) (Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables: %w", err)
	}
	var lists Lists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse variables %s: %w", path, err)
	}
	return lists, nil
}

// Page renders nodes with only the section named selected visible.
func Page(nodes []*section.Node, selected string, lists Lists) (string, error) {
	var sb strings.Builder
	if err := expand(&sb, nodes, selected, lists); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func expand(sb *strings.Builder, nodes []*section.Node, selected string, lists Lists) error {
	for _, n := range nodes {
		switch {
		case n.Type() == TypeList:
			items, ok := lists[n.ShortName()]
			if !ok {
				return fmt.Errorf("%w %q", ErrUnknownList, n.ShortName())
			}
			text, err := body(n, selected, lists)
			if err != nil {
				return err
			}
			for _, item := range items {
				sb.WriteString(Replace(text, item))
			}

		case n.Type() == TypeSection && n.ShortName() != selected:
			continue

		default:
			text, err := body(n, selected, lists)
			if err != nil {
				return err
			}
			sb.WriteString(text)
		}
	}
	return nil
}

func body(n *section.Node, selected string, lists Lists) (string, error) {
	if n.IsLeaf() {
		return n.Content, nil
	}
	var sb strings.Builder
	if err := expand(&sb, n.Subsections, selected, lists); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Replace substitutes every {KEY} in text with its value from vars in a single
// pass. Values are inserted verbatim: a value containing {OTHER} is not
// expanded again, unlike the web UI's replaceVars, which applied each key in
// turn over the result of the previous one.
func Replace(text string, vars Vars) string {
	if len(vars) == 0 {
		return text
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Sections lists the names of all section regions in document order.
func Sections(root *section.Node) []string {
	var names []string
	root.Walk(func(n *section.Node) {
		if n.Type() == TypeSection {
			names = append(names, n.ShortName())
		}
	})
	return names
}
