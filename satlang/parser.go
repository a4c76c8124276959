package satlang

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Parser is a recursive descent parser with one token of lookahead. The
// first failure sets hadError; parsing continues to surface further
// diagnostics but the program is discarded on error.
type Parser struct {
	tokenizer *Tokenizer
	curr      Token
	prev      Token

	path     string
	diag     io.Writer
	hadError bool
}

func NewParser(path string, source string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(source),
		path:      path,
		diag:      os.Stderr,
	}
}

// SetDiagnostics redirects diagnostic output, mainly for tests.
func (p *Parser) SetDiagnostics(w io.Writer) {
	p.diag = w
}

func (p *Parser) reportAt(pos Pos, format string, args ...any) {
	fmt.Fprintf(p.diag, "error: %s:%d:%d: %s\n",
		p.path, pos.Line, pos.Column, fmt.Sprintf(format, args...))
	p.hadError = true
}

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.tokenizer.Next()
		if p.curr.Kind != TokenError {
			return
		}
		p.reportAt(p.curr.Pos, "%s", p.curr.Text)
	}
}

func (p *Parser) check(kind TokenKind) bool {
	return p.curr.Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(kind TokenKind, message string) {
	if p.curr.Kind == kind {
		p.advance()
		return
	}
	p.reportAt(p.curr.Pos, "%s", message)
}

func (p *Parser) skipNewlines() {
	for p.curr.Kind == TokenNewline || p.curr.Kind == TokenSemicolon {
		p.advance()
	}
}

// Parse consumes the whole token stream and returns the program, or an
// error if any diagnostic was reported. On error the partial program is
// dropped.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}

	p.advance()
	p.skipNewlines()
	for !p.check(TokenEOF) {
		stmt := p.statement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}

	if p.hadError {
		return nil, errors.New("parse failed")
	}
	return program, nil
}

// reservedKinds are lexed keywords with no runtime meaning yet.
var reservedKinds = map[TokenKind]bool{
	TokenAnd:    true,
	TokenOr:     true,
	TokenNot:    true,
	TokenFor:    true,
	TokenIn:     true,
	TokenReturn: true,
	TokenStruct: true,
	TokenDefer:  true,
	TokenSpawn:  true,
	TokenPanic:  true,
	TokenTrue:   true,
	TokenFalse:  true,
	TokenNil:    true,
}

// typeNameKinds are reserved type spellings. They double as module
// names (the built-in `string` module), so they are accepted where a
// module qualifier can appear and rejected everywhere else.
var typeNameKinds = map[TokenKind]bool{
	TokenTypeInt:    true,
	TokenTypeFloat:  true,
	TokenTypeBool:   true,
	TokenTypeString: true,
	TokenTypeVoid:   true,
	TokenTypeByte:   true,
}

func (p *Parser) statement() Stmt {
	p.skipNewlines()

	if reservedKinds[p.curr.Kind] {
		p.reportAt(p.curr.Pos, "'%s' is not yet supported", p.curr.Text)
		p.advance()
		return nil
	}

	switch {
	case p.match(TokenImport):
		if p.check(TokenIdentifier) || typeNameKinds[p.curr.Kind] {
			p.advance()
		} else {
			p.reportAt(p.curr.Pos, "expected module name after 'import'")
		}
		return &Import{
			Module: p.prev.Text,
			Pos_:   p.prev.Pos,
		}

	case p.match(TokenLet):
		p.consume(TokenIdentifier, "expected variable name after 'let'")
		name := p.prev.Text
		pos := p.prev.Pos
		p.consume(TokenColonEqual, "expected ':=' after variable name")
		value := p.expression()
		return &Let{
			Name:  name,
			Value: value,
			Pos_:  pos,
		}

	case p.match(TokenIf):
		pos := p.prev.Pos
		condition := p.expression()
		p.consume(TokenThen, "expected 'then' after if condition")
		p.skipNewlines()
		then := p.statement()
		var els Stmt
		p.skipNewlines()
		if p.match(TokenElse) {
			p.skipNewlines()
			els = p.statement()
		}
		return &If{
			Condition: condition,
			Then:      then,
			Else:      els,
			Pos_:      pos,
		}

	case p.match(TokenWhile):
		pos := p.prev.Pos
		condition := p.expression()
		p.consume(TokenThen, "expected 'then' after while condition")
		p.skipNewlines()
		body := p.statement()
		return &While{
			Condition: condition,
			Body:      body,
			Pos_:      pos,
		}

	case p.match(TokenLoop):
		pos := p.prev.Pos
		p.skipNewlines()
		body := p.statement()
		return &Loop{
			Body: body,
			Pos_: pos,
		}

	case p.match(TokenBreak):
		return &Break{Pos_: p.prev.Pos}

	case p.match(TokenContinue):
		return &Continue{Pos_: p.prev.Pos}
	}

	expr := p.expression()
	if expr == nil {
		return nil
	}

	// `name = expr` in statement position is an assignment to an
	// existing variable.
	if ident, ok := expr.(*Ident); ok && p.match(TokenEqual) {
		value := p.expression()
		return &Assign{
			Name:  ident.Name,
			Value: value,
			Pos_:  ident.Pos_,
		}
	}

	return &ExprStmt{Expr: expr}
}

// Precedence, lowest to highest: equality, comparison, term, factor,
// unary, call, primary. Binary levels are left-associative.

func (p *Parser) expression() Expr {
	return p.equality()
}

func (p *Parser) equality() Expr {
	expr := p.comparison()

	for p.match(TokenEqualEqual) || p.match(TokenBangEqual) {
		op := BinEq
		if p.prev.Kind == TokenBangEqual {
			op = BinNeq
		}
		pos := p.prev.Pos
		right := p.comparison()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right, Pos_: pos}
	}

	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()

	for p.match(TokenLess) || p.match(TokenLessEqual) ||
		p.match(TokenGreater) || p.match(TokenGreaterEqual) {
		var op BinaryOp
		switch p.prev.Kind {
		case TokenLess:
			op = BinLt
		case TokenLessEqual:
			op = BinLte
		case TokenGreater:
			op = BinGt
		case TokenGreaterEqual:
			op = BinGte
		}
		pos := p.prev.Pos
		right := p.term()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right, Pos_: pos}
	}

	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()

	for p.match(TokenPlus) || p.match(TokenMinus) {
		op := BinAdd
		if p.prev.Kind == TokenMinus {
			op = BinSub
		}
		pos := p.prev.Pos
		right := p.factor()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right, Pos_: pos}
	}

	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()

	for p.match(TokenStar) || p.match(TokenSlash) || p.match(TokenPercent) {
		var op BinaryOp
		switch p.prev.Kind {
		case TokenStar:
			op = BinMul
		case TokenSlash:
			op = BinDiv
		case TokenPercent:
			op = BinMod
		}
		pos := p.prev.Pos
		right := p.unary()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right, Pos_: pos}
	}

	return expr
}

func (p *Parser) unary() Expr {
	if p.match(TokenMinus) || p.match(TokenBang) {
		op := UnaryNeg
		if p.prev.Kind == TokenBang {
			op = UnaryNot
		}
		pos := p.prev.Pos
		operand := p.unary() // right-associative
		return &UnaryExpr{Op: op, Operand: operand, Pos_: pos}
	}

	return p.call()
}

// startsArgument reports whether the current token can begin a call
// argument for callee. The language has no parentheses at call sites, so
// a primary token directly after an expression denotes application. A
// `-` starts a negated argument only after a member-access callee
// (`io.println -1`); after any other expression it is binary subtraction.
func (p *Parser) startsArgument(callee Expr) bool {
	switch p.curr.Kind {
	case TokenString, TokenInt, TokenFloat, TokenIdentifier,
		TokenBang, TokenLeftParen:
		return true
	case TokenMinus:
		_, ok := callee.(*MemberAccess)
		return ok
	}
	return false
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for {
		if p.match(TokenDot) {
			p.consume(TokenIdentifier, "expected member name after '.'")
			expr = &MemberAccess{
				Object: expr,
				Member: p.prev.Text,
				Pos_:   p.prev.Pos,
			}
		} else if p.startsArgument(expr) {
			pos := p.curr.Pos
			args := []Expr{p.expression()}
			for p.match(TokenComma) {
				args = append(args, p.expression())
			}
			// One application per callee; further tokens belong
			// to the next statement.
			return &Call{
				Callee: expr,
				Args:   args,
				Pos_:   pos,
			}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) primary() Expr {
	if p.match(TokenString) {
		text := p.prev.Text
		return &StringLit{
			Value: text[1 : len(text)-1],
			Pos_:  p.prev.Pos,
		}
	}

	if p.match(TokenInt) {
		value, err := strconv.ParseInt(p.prev.Text, 10, 64)
		if err != nil {
			p.reportAt(p.prev.Pos, "invalid integer literal %q", p.prev.Text)
		}
		return &IntLit{
			Value: value,
			Pos_:  p.prev.Pos,
		}
	}

	if p.match(TokenFloat) {
		value, err := strconv.ParseFloat(p.prev.Text, 64)
		if err != nil {
			p.reportAt(p.prev.Pos, "invalid float literal %q", p.prev.Text)
		}
		return &FloatLit{
			Value: value,
			Pos_:  p.prev.Pos,
		}
	}

	if p.match(TokenIdentifier) {
		return &Ident{
			Name: p.prev.Text,
			Pos_: p.prev.Pos,
		}
	}

	if typeNameKinds[p.curr.Kind] {
		keyword := p.curr
		p.advance()
		if p.check(TokenDot) {
			// module qualifier, e.g. string.to_upper
			return &Ident{
				Name: keyword.Text,
				Pos_: keyword.Pos,
			}
		}
		p.reportAt(keyword.Pos, "'%s' is not yet supported", keyword.Text)
		return nil
	}

	if reservedKinds[p.curr.Kind] {
		p.reportAt(p.curr.Pos, "'%s' is not yet supported", p.curr.Text)
	} else {
		p.reportAt(p.curr.Pos, "expected expression")
	}
	p.advance()
	return nil
}
