// Package str contains string case conversions.
package str

import (
	"strings"
	"unicode/utf8"
)

const phraseDelimiters = " _-"

var phraseReplacer = strings.NewReplacer(" ", "_", "-", "_")

// ToScreamingSnakeCase transforms a given string into screaming snake case format.
//
// Strings containing a space, an underscore or a hyphen are treated as phrases: spaces and hyphens
// become underscores and ASCII letters are uppercased. Consecutive delimiters are not collapsed.
// Any other string is treated as camelCase or PascalCase: every rune that is not an ASCII lowercase
// letter opens a new word, unless it is the first rune.
//
//	"Foo bar"  -> "FOO_BAR"
//	"fooBar3"  -> "FOO_BAR_3"
//	"XMLParser" -> "X_M_L_PARSER"
func ToScreamingSnakeCase(in string) string {
	if strings.ContainsAny(in, phraseDelimiters) {
		return fromPhrase(in)
	}
	return fromCamel(in)
}

// IsScreamingSnakeCase reports whether the given string is left unchanged by ToScreamingSnakeCase.
func IsScreamingSnakeCase(in string) bool {
	return ToScreamingSnakeCase(in) == in
}

func fromPhrase(in string) string {
	return ToUpperCase(phraseReplacer.Replace(in))
}

func fromCamel(in string) string {
	sb := strings.Builder{}
	sb.Grow(len(in) + len(in)/3) // estimate space for underscores

	for i := 0; i < len(in); {
		r, size := utf8.DecodeRuneInString(in[i:])

		switch {
		case isLowerASCII(r):
			sb.WriteByte(byte(r) - ('a' - 'A'))
		case i == 0:
			sb.WriteString(in[:size])
		default:
			sb.WriteByte('_')
			// invalid sequences are copied byte for byte
			sb.WriteString(in[i : i+size])
		}

		i += size
	}

	return sb.String()
}
