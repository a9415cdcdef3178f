// Package parser implements the permissive line-oriented parser for Moxfield CSV exports.
//
// The input is split into lines first and every line is then split into
// fields by a quote-toggling state machine over the line's tokens. Parsing
// never fails: unterminated quotes and ragged rows produce best-effort
// fields, optionally reported through Options.WarningCallback.
package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-moxfield/internal/tokenizer"
)

// Options configures the parser behavior.
type Options struct {
	// WarningCallback is invoked for recoverable oddities such as an
	// unterminated quote or a row longer than the header. Parsing continues
	// either way.
	WarningCallback func(line int, message string)
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{}
}

// Parser splits a CSV document into rows of trimmed fields.
// It keeps a single token lookahead for the escaped-quote rule.
type Parser struct {
	input string
	opts  Options

	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool

	line    int
	lineEnd ast.Position
}

// NewParser creates a new parser for the given input string.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a new parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return &Parser{
		input: input,
		opts:  opts,
	}
}

// Parse parses the input and returns an AST of its rows.
//
// Grammar:
//
//	File = Header { Blank | Record } ;
//
// The result is an *ast.ArrayDataNode whose first element is the header row
// and whose remaining elements are the non-blank data rows. Each row is an
// *ast.ArrayDataNode of *ast.LiteralNode string fields. Input that is empty
// after trimming yields an empty array.
func (p *Parser) Parse() *ast.ArrayDataNode {
	trimmed := TrimSpace(p.input)
	if trimmed == "" {
		return ast.NewArrayDataNode([]ast.SchemaNode{}, ast.ZeroPosition())
	}

	lines := splitLines(trimmed)
	rows := make([]ast.SchemaNode, 0, len(lines))

	header := p.parseLine(lines[0], 1)
	rows = append(rows, header)

	for i := 1; i < len(lines); i++ {
		line := TrimSpace(lines[i])
		if line == "" {
			continue
		}

		row := p.parseLine(line, i+1)
		if extra := row.Len() - header.Len(); extra > 0 {
			p.warn(i+1, fmt.Sprintf("%d field(s) beyond the header dropped", extra))
		}
		rows = append(rows, row)
	}

	return ast.NewArrayDataNode(rows, ast.ZeroPosition())
}

// SplitLine splits a single line into trimmed fields.
//
// A line without commas yields exactly one field and a trailing comma yields
// a trailing empty field.
func SplitLine(line string) []string {
	p := NewParser(line)
	return Fields(p.parseLine(line, 1))
}

// Rows returns the string fields of every row in a file node.
func Rows(file *ast.ArrayDataNode) [][]string {
	elements := file.Elements()
	rows := make([][]string, 0, len(elements))
	for _, elem := range elements {
		row, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			continue
		}
		rows = append(rows, Fields(row))
	}
	return rows
}

// Fields returns the string values of a row node.
func Fields(row *ast.ArrayDataNode) []string {
	elements := row.Elements()
	fields := make([]string, 0, len(elements))
	for _, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			continue
		}
		s, _ := lit.Value().(string)
		fields = append(fields, s)
	}
	return fields
}

// TrimSpace removes leading and trailing white space, treating the Unicode
// byte order mark as white space so exports saved with a BOM parse cleanly.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// splitLines splits on "\n" and drops the "\r" of a "\r\n" terminator.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseLine parses one line into a row.
//
// Grammar (permissive):
//
//	Record = Field { "," Field } ;
//	Field  = { Char | '"' | '""' } ;
//
// A quote toggles quoting, except that inside quotes a doubled quote stands
// for one literal quote. Commas inside quotes are literal. Field values are
// trimmed once complete.
func (p *Parser) parseLine(line string, lineNum int) *ast.ArrayDataNode {
	tok := tokenizer.NewTokenizer()
	tok.Initialize(line)
	p.tokenizer = &tok
	p.line = lineNum
	p.lineEnd = ast.NewPosition(len(line), lineNum, utf8.RuneCountInString(line)+1)
	p.advance()

	rowPos := p.position()
	fields := make([]ast.SchemaNode, 0, 8)
	fieldPos := rowPos
	insideQuotes := false
	var value strings.Builder

	for p.hasToken {
		token := p.peek()

		switch token.Kind() {
		case tokenizer.TokenDQuote:
			p.advance()
			if insideQuotes && p.hasToken && p.peek().Kind() == tokenizer.TokenDQuote {
				// Escaped quote
				value.WriteByte('"')
				p.advance()
			} else {
				insideQuotes = !insideQuotes
			}

		case tokenizer.TokenComma:
			p.advance()
			if insideQuotes {
				value.WriteByte(',')
				continue
			}
			fields = append(fields, ast.NewLiteralNode(TrimSpace(value.String()), fieldPos))
			value.Reset()
			fieldPos = p.position()

		default:
			value.WriteString(token.ValueString())
			p.advance()
		}
	}

	if insideQuotes {
		p.warn(lineNum, "unterminated quoted field")
	}
	fields = append(fields, ast.NewLiteralNode(TrimSpace(value.String()), fieldPos))

	return ast.NewArrayDataNode(fields, rowPos)
}

// Helper methods

// peek returns current token without advancing.
func (p *Parser) peek() *shapetokenizer.Token {
	return p.current
}

// advance moves to next token.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// position returns the current position for AST nodes. Offsets and columns
// are relative to the line; the row is the line number in the trimmed input.
func (p *Parser) position() ast.Position {
	if p.hasToken && p.current != nil {
		return ast.NewPosition(
			p.current.Offset(),
			p.line,
			p.current.Column(),
		)
	}
	return p.lineEnd
}

func (p *Parser) warn(line int, message string) {
	if p.opts.WarningCallback != nil {
		p.opts.WarningCallback(line, message)
	}
}
