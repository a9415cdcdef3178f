// Package tokenizer provides line-level CSV tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for a single CSV line.
//
// Lines are split on newlines before tokenizing, so there is no newline
// token. The parser decides what a quote means from its own state.
const (
	// Structural tokens
	TokenComma  = "Comma"  // , (field separator)
	TokenDQuote = "DQuote" // " (quote toggle or half of an escaped quote)

	// Field content token
	TokenField = "Field" // run of characters that are neither comma nor quote
)
