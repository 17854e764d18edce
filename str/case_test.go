package str

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToScreamingSnakeCase(t *testing.T) {
	t.Run("it should convert camelCase to SCREAMING_SNAKE_CASE", func(t *testing.T) {
		// GIVEN
		input := "fooBar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_BAR", result)
	})

	t.Run("it should convert PascalCase to SCREAMING_SNAKE_CASE", func(t *testing.T) {
		// GIVEN
		input := "FooBar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_BAR", result)
	})

	t.Run("it should handle lowercase with underscores", func(t *testing.T) {
		// GIVEN
		input := "foo_bar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_BAR", result)
	})

	t.Run("it should handle kebab-case", func(t *testing.T) {
		// GIVEN
		input := "kebab-case-string"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "KEBAB_CASE_STRING", result)
	})

	t.Run("it should handle sentences", func(t *testing.T) {
		// GIVEN
		input := "HTTP Foo bar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "HTTP_FOO_BAR", result)
	})

	t.Run("it should open a word on digits", func(t *testing.T) {
		// GIVEN
		input := "fooBar3"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_BAR_3", result)
	})

	t.Run("it should split every consecutive uppercase letter", func(t *testing.T) {
		// GIVEN
		input := "XMLHttpRequest"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "X_M_L_HTTP_REQUEST", result)
	})

	t.Run("it should keep acronyms untouched in phrases", func(t *testing.T) {
		// GIVEN
		input := "XML http request"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "XML_HTTP_REQUEST", result)
	})

	t.Run("it should not collapse consecutive delimiters", func(t *testing.T) {
		// GIVEN
		input := "foo - bar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO___BAR", result)
	})

	t.Run("it should not trim surrounding spaces", func(t *testing.T) {
		// GIVEN
		input := " fooBar "

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "_FOOBAR_", result)
	})

	t.Run("it should handle single characters", func(t *testing.T) {
		// GIVEN
		input := "a"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "A", result)
	})

	t.Run("it should handle empty string", func(t *testing.T) {
		// GIVEN
		input := ""

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "", result)
	})

	t.Run("it should handle strings starting with numbers", func(t *testing.T) {
		// GIVEN
		input := "2ndVersion"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "2ND_VERSION", result)
	})

	t.Run("it should treat symbols as word starts", func(t *testing.T) {
		// GIVEN
		input := "foo.bar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_.BAR", result)
	})

	t.Run("it should leave non ascii letters untouched", func(t *testing.T) {
		// GIVEN
		input := "caféCrème"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "CAF_é_CR_èME", result)
	})

	t.Run("it should copy invalid utf-8 bytes as is", func(t *testing.T) {
		// GIVEN
		input := "foo\xffbar"

		// WHEN
		result := ToScreamingSnakeCase(input)

		// THEN
		assert.Equal(t, "FOO_\xffBAR", result)
	})

	t.Run("it should handle complex real-world examples", func(t *testing.T) {
		// GIVEN
		testCases := map[string]string{
			"customerId":     "CUSTOMER_ID",
			"XMLParser":      "X_M_L_PARSER",
			"httpStatusCode": "HTTP_STATUS_CODE",
			"Foo bar":        "FOO_BAR",
			"Foo Bar":        "FOO_BAR",
			"foo-bar":        "FOO_BAR",
			"API2Response":   "A_P_I_2_RESPONSE",
			"version2":       "VERSION_2",
			"max_line_bytes": "MAX_LINE_BYTES",
		}

		for input, expected := range testCases {
			// WHEN
			result := ToScreamingSnakeCase(input)

			// THEN
			assert.Equal(t, expected, result, "Failed for input: %s", input)
		}
	})
}

func TestIsScreamingSnakeCase(t *testing.T) {
	t.Run("it should accept screaming snake case strings", func(t *testing.T) {
		// GIVEN
		inputs := []string{
			"FOO_BAR_STRING_THAT_IS_REALLY_REALLY_LONG",
			"FOO_BAR1_STRING_THAT_IS_REALLY_REALLY_LONG",
			"FOO_BAR_1_STRING_THAT_IS_REALLY_REALLY_LONG",
			"",
			"A",
		}

		for _, input := range inputs {
			// WHEN
			result := IsScreamingSnakeCase(input)

			// THEN
			assert.True(t, result, "Failed for input: %s", input)
		}
	})

	t.Run("it should reject other cases", func(t *testing.T) {
		// GIVEN
		inputs := []string{
			"Foo bar string that is really really long",
			"foo-bar-string-that-is-really-really-long",
			"FooBarIsAReallyReallyLongString",
			"Foo Bar Is A Really Really Long String",
			"fooBarIsAReallyReallyLongString",
		}

		for _, input := range inputs {
			// WHEN
			result := IsScreamingSnakeCase(input)

			// THEN
			assert.False(t, result, "Failed for input: %s", input)
		}
	})

	t.Run("it should accept consecutive underscores", func(t *testing.T) {
		// GIVEN
		input := "FOO__BAR"

		// WHEN
		result := IsScreamingSnakeCase(input)

		// THEN
		assert.True(t, result)
	})

	t.Run("it should reject single uppercase words", func(t *testing.T) {
		// GIVEN
		input := "FOO"

		// WHEN
		result := IsScreamingSnakeCase(input)

		// THEN
		assert.False(t, result, "FOO is split letter by letter in the camel branch")
	})
}

func FuzzToScreamingSnakeCase(f *testing.F) {
	for _, seed := range []string{
		"", "a", "foo_bar", "HTTP Foo bar", "Foo bar", "Foo Bar", "FooBar", "fooBar", "fooBar3",
		"kebab-case", "  ", "__", "XMLHttpRequest", "caféCrème", "foo\xffbar",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		converted := ToScreamingSnakeCase(input)

		assert.Equal(t, converted == input, IsScreamingSnakeCase(input))
		assert.Equal(t, converted, ToUpperCase(converted), "ascii letters must all be uppercase")

		if strings.ContainsAny(input, " _-") {
			assert.NotContains(t, converted, " ")
			assert.NotContains(t, converted, "-")
			assert.Equal(t, len(input), len(converted), "phrase branch only replaces bytes")
		}

		if strings.Contains(converted, "_") || utf8.RuneCountInString(converted) <= 1 {
			assert.Equal(t, converted, ToScreamingSnakeCase(converted), "conversion must be idempotent")
		}
	})
}
