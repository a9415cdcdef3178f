package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for one line of a Moxfield CSV export.
//
// Every input character belongs to exactly one token:
// 1. Comma
// 2. Double quote
// 3. Field content (any run of other characters, including a stray CR)
//
// Because no character is left unmatched, tokenizing always reaches the end
// of the line. Malformed quoting is the parser's business, not ours.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		FieldContentMatcher(),
	)
}

// Tokenize returns every token of line in order.
func Tokenize(line string) []*tokenizer.Token {
	tok := NewTokenizer()
	tok.Initialize(line)

	var tokens []*tokenizer.Token
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// FieldContentMatcher matches runs of characters that are not comma or quote.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except ',' and '"'> ;
//
// Whitespace is kept; fields are trimmed once they are complete.
func FieldContentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return fieldContentMatcherByte(byteStream)
		}
		return fieldContentMatcherRune(stream)
	}
}

// fieldContentMatcherByte scans bytes directly. Both stop characters are
// ASCII, so multi-byte UTF-8 sequences are consumed whole.
func fieldContentMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || b == ',' || b == '"' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || r == ',' || r == '"' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}
