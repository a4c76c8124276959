package satlang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(source string) []Token {
	tokenizer := NewTokenizer(source)
	var tokens []Token
	for {
		token := tokenizer.Next()
		tokens = append(tokens, token)
		if token.Kind == TokenEOF {
			return tokens
		}
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanHello(t *testing.T) {
	tokens := scanAll("import io\nio.println \"Hello, World!\"\n")
	assert.Equal(t, []TokenKind{
		TokenImport, TokenIdentifier, TokenNewline,
		TokenIdentifier, TokenDot, TokenIdentifier, TokenString, TokenNewline,
		TokenEOF,
	}, kinds(tokens))

	assert.Equal(t, "io", tokens[1].Text)
	assert.Equal(t, `"Hello, World!"`, tokens[6].Text)
}

func TestScanPositions(t *testing.T) {
	tokens := scanAll("let x := 1\nlet y := 2")

	assert.Equal(t, Pos{Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Pos{Line: 1, Column: 5}, tokens[1].Pos)
	assert.Equal(t, Pos{Line: 1, Column: 7}, tokens[2].Pos)
	assert.Equal(t, TokenNewline, tokens[4].Kind)
	assert.Equal(t, Pos{Line: 2, Column: 1}, tokens[5].Pos)
	assert.Equal(t, Pos{Line: 2, Column: 5}, tokens[6].Pos)
}

func TestScanOperators(t *testing.T) {
	tokens := scanAll("== != <= >= := .. += -= *= /= -> = < > + - * / % ! . ,")
	assert.Equal(t, []TokenKind{
		TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual,
		TokenColonEqual, TokenDotDot, TokenPlusEqual, TokenMinusEqual,
		TokenStarEqual, TokenSlashEqual, TokenArrow,
		TokenEqual, TokenLess, TokenGreater,
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenBang, TokenDot, TokenComma,
		TokenEOF,
	}, kinds(tokens))
}

func TestScanNumbers(t *testing.T) {
	tokens := scanAll("42 3.14 7.")

	assert.Equal(t, TokenInt, tokens[0].Kind)
	assert.Equal(t, "42", tokens[0].Text)

	assert.Equal(t, TokenFloat, tokens[1].Kind)
	assert.Equal(t, "3.14", tokens[1].Text)

	// a dot not followed by a digit is not part of the number
	assert.Equal(t, TokenInt, tokens[2].Kind)
	assert.Equal(t, "7", tokens[2].Text)
	assert.Equal(t, TokenDot, tokens[3].Kind)
}

func TestScanKeywords(t *testing.T) {
	source := "and or not if else then for in loop while break continue " +
		"return struct let import defer spawn panic true false nil " +
		"int float bool string void byte"
	tokens := scanAll(source)

	expected := []TokenKind{
		TokenAnd, TokenOr, TokenNot, TokenIf, TokenElse, TokenThen,
		TokenFor, TokenIn, TokenLoop, TokenWhile, TokenBreak,
		TokenContinue, TokenReturn, TokenStruct, TokenLet, TokenImport,
		TokenDefer, TokenSpawn, TokenPanic, TokenTrue, TokenFalse,
		TokenNil, TokenTypeInt, TokenTypeFloat, TokenTypeBool,
		TokenTypeString, TokenTypeVoid, TokenTypeByte, TokenEOF,
	}
	assert.Equal(t, expected, kinds(tokens))

	// non-reserved spellings stay identifiers
	tokens = scanAll("iff lets important _x x1")
	for _, token := range tokens[:len(tokens)-1] {
		assert.Equal(t, TokenIdentifier, token.Kind, token.Text)
	}
}

func TestScanComments(t *testing.T) {
	tokens := scanAll("1 // comment until end\n2")
	assert.Equal(t, []TokenKind{
		TokenInt, TokenNewline, TokenInt, TokenEOF,
	}, kinds(tokens))
}

func TestScanMultilineString(t *testing.T) {
	tokens := scanAll("\"a\nb\" x")
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, "\"a\nb\"", tokens[0].Text)
	// the embedded newline advanced the line counter
	assert.Equal(t, 2, tokens[1].Pos.Line)
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := scanAll(`"no closing quote`)
	assert.Equal(t, TokenError, tokens[0].Kind)
	assert.Contains(t, tokens[0].Text, "unterminated string")
}

func TestScanUnknownByte(t *testing.T) {
	tokens := scanAll("let x := 1 @")
	last := tokens[len(tokens)-2]
	assert.Equal(t, TokenError, last.Kind)
}

func TestScanRoundTrip(t *testing.T) {
	// token texts are slices of the source: joining them recovers the
	// source up to whitespace and comments
	source := "let x := 2 + 3 * 4 // answer\nio.println \"{}\", x\n"
	var b strings.Builder
	for _, token := range scanAll(source) {
		b.WriteString(token.Text)
	}

	stripped := strings.NewReplacer(" ", "", "// answer", "").Replace(source)
	assert.Equal(t, stripped, b.String())
}

func TestScanEOFIsSticky(t *testing.T) {
	tokenizer := NewTokenizer("x")
	tokenizer.Next()
	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, tokenizer.Next().Kind)
	}
}
