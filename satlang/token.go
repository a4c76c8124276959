package satlang

import "fmt"

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota

	// punctuation
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenDot
	TokenColon
	TokenSemicolon

	// operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBang
	TokenEqual
	TokenEqualEqual
	TokenBangEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenColonEqual
	TokenDotDot
	TokenPlusEqual
	TokenMinusEqual
	TokenStarEqual
	TokenSlashEqual
	TokenArrow

	// literals
	TokenIdentifier
	TokenInt
	TokenFloat
	TokenString

	// keywords
	TokenAnd
	TokenOr
	TokenNot
	TokenIf
	TokenElse
	TokenThen
	TokenFor
	TokenIn
	TokenLoop
	TokenWhile
	TokenBreak
	TokenContinue
	TokenReturn
	TokenStruct
	TokenLet
	TokenImport
	TokenDefer
	TokenSpawn
	TokenPanic
	TokenTrue
	TokenFalse
	TokenNil

	// type names, reserved
	TokenTypeInt
	TokenTypeFloat
	TokenTypeBool
	TokenTypeString
	TokenTypeVoid
	TokenTypeByte

	TokenNewline
	TokenEOF
	TokenError
)

var tokenNames = map[TokenKind]string{
	TokenInvalid:      "INVALID",
	TokenLeftParen:    "LPAREN",
	TokenRightParen:   "RPAREN",
	TokenLeftBrace:    "LBRACE",
	TokenRightBrace:   "RBRACE",
	TokenLeftBracket:  "LBRACKET",
	TokenRightBracket: "RBRACKET",
	TokenComma:        "COMMA",
	TokenDot:          "DOT",
	TokenColon:        "COLON",
	TokenSemicolon:    "SEMICOLON",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "STAR",
	TokenSlash:        "SLASH",
	TokenPercent:      "PERCENT",
	TokenBang:         "BANG",
	TokenEqual:        "EQUAL",
	TokenEqualEqual:   "EQUAL_EQUAL",
	TokenBangEqual:    "BANG_EQUAL",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESS_EQUAL",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATER_EQUAL",
	TokenColonEqual:   "COLON_EQUAL",
	TokenDotDot:       "DOT_DOT",
	TokenPlusEqual:    "PLUS_EQUAL",
	TokenMinusEqual:   "MINUS_EQUAL",
	TokenStarEqual:    "STAR_EQUAL",
	TokenSlashEqual:   "SLASH_EQUAL",
	TokenArrow:        "ARROW",
	TokenIdentifier:   "IDENTIFIER",
	TokenInt:          "INT",
	TokenFloat:        "FLOAT",
	TokenString:       "STRING",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenIf:           "IF",
	TokenElse:         "ELSE",
	TokenThen:         "THEN",
	TokenFor:          "FOR",
	TokenIn:           "IN",
	TokenLoop:         "LOOP",
	TokenWhile:        "WHILE",
	TokenBreak:        "BREAK",
	TokenContinue:     "CONTINUE",
	TokenReturn:       "RETURN",
	TokenStruct:       "STRUCT",
	TokenLet:          "LET",
	TokenImport:       "IMPORT",
	TokenDefer:        "DEFER",
	TokenSpawn:        "SPAWN",
	TokenPanic:        "PANIC",
	TokenTrue:         "TRUE",
	TokenFalse:        "FALSE",
	TokenNil:          "NIL",
	TokenTypeInt:      "TYPE_INT",
	TokenTypeFloat:    "TYPE_FLOAT",
	TokenTypeBool:     "TYPE_BOOL",
	TokenTypeString:   "TYPE_STRING",
	TokenTypeVoid:     "TYPE_VOID",
	TokenTypeByte:     "TYPE_BYTE",
	TokenNewline:      "NEWLINE",
	TokenEOF:          "EOF",
	TokenError:        "ERROR",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

var keywords = map[string]TokenKind{
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"if":       TokenIf,
	"else":     TokenElse,
	"then":     TokenThen,
	"for":      TokenFor,
	"in":       TokenIn,
	"loop":     TokenLoop,
	"while":    TokenWhile,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"struct":   TokenStruct,
	"let":      TokenLet,
	"import":   TokenImport,
	"defer":    TokenDefer,
	"spawn":    TokenSpawn,
	"panic":    TokenPanic,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"nil":      TokenNil,
	"int":      TokenTypeInt,
	"float":    TokenTypeFloat,
	"bool":     TokenTypeBool,
	"string":   TokenTypeString,
	"void":     TokenTypeVoid,
	"byte":     TokenTypeByte,
}

type Pos struct {
	Line   int
	Column int
}

// Token is a slice of the source text with its kind and origin.
// Text for TokenString still includes the surrounding quotes; the parser
// strips them.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Pos.Line, t.Pos.Column, t.Kind, t.Text)
}
