// Package literal renders section trees as statically initialized nested
// arrays of records in C++ source.
package literal

import (
	"fmt"
	"strings"
)

// Escaper makes raw text safe to embed between the double quotes of a string
// literal.
type Escaper func(string) string

var cEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
)

// EscapeC escapes backslashes, line breaks and double quotes for a C or C++
// string literal.
func EscapeC(s string) string {
	return cEscaper.Replace(s)
}

// UnescapeC reverses EscapeC.
func UnescapeC(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 == len(s) {
			return "", fmt.Errorf("trailing backslash at offset %d", i)
		}
		i++
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		default:
			return "", fmt.Errorf("unknown escape \\%c at offset %d", s[i], i-1)
		}
	}
	return sb.String(), nil
}
