//go:build go1.18
// +build go1.18

package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTokenizer checks that every character of a line lands in some token.
// Run with: go test -fuzz=FuzzTokenizer -fuzztime=30s ./internal/tokenizer
func FuzzTokenizer(f *testing.F) {
	seeds := []string{
		"",
		"a",
		",",
		"\"",
		"\"\"",
		"a,b,c",
		"\"quoted\"",
		"\"with,comma\"",
		"\"with\"\"quote\"",
		"\"unterminated,",
		"a\rb",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Token values are rune based; invalid UTF-8 comes back as U+FFFD.
		if !utf8.ValidString(input) {
			t.Skip()
		}

		var sb strings.Builder
		for _, token := range Tokenize(input) {
			sb.WriteString(token.ValueString())
		}
		if sb.String() != input {
			t.Fatalf("tokens do not cover input: got %q, want %q", sb.String(), input)
		}
	})
}
