package satvm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/satorilang/satori/satlang"
)

// MaxLocals bounds the flat local-slot array; slot indexes embedded in
// the opcode stream are one byte wide.
const MaxLocals = 256

const maxJump = 0xffff

type local struct {
	name string
	slot int
}

// Compiler walks the AST once, appending opcodes and constants to a
// chunk. The locals array is flat: the whole program shares one scope
// and a redeclaration shadows.
type Compiler struct {
	chunk *Chunk

	locals     [MaxLocals]local
	localCount int

	diag     io.Writer
	hadError bool
}

func NewCompiler() *Compiler {
	return &Compiler{
		chunk: NewChunk(),
		diag:  os.Stderr,
	}
}

// SetDiagnostics redirects diagnostic output, mainly for tests.
func (c *Compiler) SetDiagnostics(w io.Writer) {
	c.diag = w
}

// Compile emits the whole program, terminated by OP_HALT. On error the
// chunk is dropped.
func Compile(program *satlang.Program) (*Chunk, error) {
	c := NewCompiler()
	return c.Compile(program)
}

func (c *Compiler) Compile(program *satlang.Program) (*Chunk, error) {
	for _, stmt := range program.Statements {
		c.statement(stmt)
	}
	c.emit(OpHalt)

	if c.hadError {
		return nil, errors.New("compile failed")
	}
	return c.chunk, nil
}

func (c *Compiler) report(pos satlang.Pos, format string, args ...any) {
	fmt.Fprintf(c.diag, "error: %d:%d: %s\n",
		pos.Line, pos.Column, fmt.Sprintf(format, args...))
	c.hadError = true
}

func (c *Compiler) emit(op Opcode) {
	c.chunk.WriteOp(op)
}

func (c *Compiler) emitBytes(op Opcode, operand byte) {
	c.chunk.WriteOp(op)
	c.chunk.Write(operand)
}

// emitJump writes the opcode with a two-byte placeholder operand and
// returns the patch site.
func (c *Compiler) emitJump(op Opcode) int {
	c.emit(op)
	c.chunk.Write(0xff)
	c.chunk.Write(0xff)
	return len(c.chunk.Code) - 2
}

// patchJump resolves a pending forward jump to the current address. The
// -2 accounts for the operand bytes already consumed when the jump
// executes.
func (c *Compiler) patchJump(site int, pos satlang.Pos) {
	jump := len(c.chunk.Code) - site - 2
	if jump > maxJump {
		c.report(pos, "too much code to jump over")
		return
	}
	c.chunk.Code[site] = byte(jump >> 8)
	c.chunk.Code[site+1] = byte(jump)
}

// emitLoop writes a backward jump to loopStart. The +3 covers the
// OP_LOOP byte and its operand bytes, consumed before the cursor moves
// back.
func (c *Compiler) emitLoop(loopStart int, pos satlang.Pos) {
	c.emit(OpLoop)
	offset := len(c.chunk.Code) - loopStart + 2
	if offset > maxJump {
		c.report(pos, "loop body too large")
		return
	}
	c.chunk.Write(byte(offset >> 8))
	c.chunk.Write(byte(offset))
}

func (c *Compiler) makeConstant(v Value, pos satlang.Pos) int {
	idx := c.chunk.AddConstant(v)
	if idx >= MaxConstants {
		c.report(pos, "too many constants in one chunk")
		return 0
	}
	return idx
}

func (c *Compiler) addLocal(name string, pos satlang.Pos) int {
	if c.localCount >= MaxLocals {
		c.report(pos, "too many local variables")
		return -1
	}
	c.locals[c.localCount] = local{
		name: name,
		slot: c.localCount,
	}
	c.localCount++
	return c.localCount - 1
}

// resolveLocal scans newest-first so a redeclaration shadows.
func (c *Compiler) resolveLocal(name string) int {
	for i := c.localCount - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return c.locals[i].slot
		}
	}
	return -1
}

func (c *Compiler) statement(stmt satlang.Stmt) {
	switch s := stmt.(type) {

	case *satlang.Import:
		idx := c.makeConstant(Str(s.Module), s.Pos_)
		c.emitBytes(OpImport, byte(idx))

	case *satlang.Let:
		c.expression(s.Value)
		slot := c.addLocal(s.Name, s.Pos_)
		if slot >= 0 {
			c.emitBytes(OpSetLocal, byte(slot))
		}

	case *satlang.Assign:
		c.expression(s.Value)
		slot := c.resolveLocal(s.Name)
		if slot < 0 {
			c.report(s.Pos_, "undefined variable '%s' in assignment", s.Name)
			return
		}
		c.emitBytes(OpSetLocal, byte(slot))

	case *satlang.If:
		c.expression(s.Condition)
		elseJump := c.emitJump(OpJumpIfFalse)
		c.emit(OpPop)
		c.statement(s.Then)
		endJump := c.emitJump(OpJump)
		c.patchJump(elseJump, s.Pos_)
		c.emit(OpPop)
		if s.Else != nil {
			c.statement(s.Else)
		}
		c.patchJump(endJump, s.Pos_)

	case *satlang.While:
		loopStart := len(c.chunk.Code)
		c.expression(s.Condition)
		exitJump := c.emitJump(OpJumpIfFalse)
		c.emit(OpPop)
		c.statement(s.Body)
		c.emitLoop(loopStart, s.Pos_)
		c.patchJump(exitJump, s.Pos_)
		c.emit(OpPop)

	case *satlang.Loop:
		loopStart := len(c.chunk.Code)
		c.statement(s.Body)
		c.emitLoop(loopStart, s.Pos_)

	case *satlang.Break:
		c.report(s.Pos_, "break not yet implemented")

	case *satlang.Continue:
		c.report(s.Pos_, "continue not yet implemented")

	case *satlang.Block:
		for _, stmt := range s.Statements {
			c.statement(stmt)
		}

	case *satlang.ExprStmt:
		c.expressionStatement(s.Expr)

	case nil:

	default:
		c.report(stmt.Position(), "unknown statement node %T", stmt)
	}
}

// expressionStatement compiles an expression in statement position.
// Calls discard their return value; any other expression would leave a
// value on the stack, so it is popped too.
func (c *Compiler) expressionStatement(expr satlang.Expr) {
	if call, ok := expr.(*satlang.Call); ok {
		c.call(call)
		return
	}
	c.expression(expr)
	c.emit(OpPop)
}

func (c *Compiler) expression(expr satlang.Expr) {
	switch e := expr.(type) {

	case *satlang.StringLit:
		idx := c.makeConstant(Str(e.Value), e.Pos_)
		c.emitBytes(OpConstant, byte(idx))

	case *satlang.IntLit:
		idx := c.makeConstant(Int(e.Value), e.Pos_)
		c.emitBytes(OpConstant, byte(idx))

	case *satlang.FloatLit:
		idx := c.makeConstant(Float(e.Value), e.Pos_)
		c.emitBytes(OpConstant, byte(idx))

	case *satlang.Ident:
		slot := c.resolveLocal(e.Name)
		if slot < 0 {
			c.report(e.Pos_, "undefined variable '%s'", e.Name)
			return
		}
		c.emitBytes(OpGetLocal, byte(slot))

	case *satlang.BinaryExpr:
		c.expression(e.Left)
		c.expression(e.Right)
		switch e.Op {
		case satlang.BinAdd:
			c.emit(OpAdd)
		case satlang.BinSub:
			c.emit(OpSubtract)
		case satlang.BinMul:
			c.emit(OpMultiply)
		case satlang.BinDiv:
			c.emit(OpDivide)
		case satlang.BinMod:
			c.emit(OpModulo)
		case satlang.BinEq:
			c.emit(OpEqual)
		case satlang.BinNeq:
			c.emit(OpNotEqual)
		case satlang.BinLt:
			c.emit(OpLess)
		case satlang.BinLte:
			c.emit(OpLessEqual)
		case satlang.BinGt:
			c.emit(OpGreater)
		case satlang.BinGte:
			c.emit(OpGreaterEqual)
		}

	case *satlang.UnaryExpr:
		c.expression(e.Operand)
		if e.Op == satlang.UnaryNeg {
			c.emit(OpNegate)
		} else {
			c.emit(OpNot)
		}

	case *satlang.Call:
		// Calls are compiled only in statement position; a call in
		// an operand would need its return value kept, which the
		// core does not support.
		c.report(e.Pos_, "unknown function call")

	case *satlang.MemberAccess:
		c.report(e.Pos_, "member access must be used in a call")

	case nil:

	default:
		c.report(expr.Position(), "unknown expression node %T", expr)
	}
}

// call lowers `object.member arg, ...` to a qualified-name global load,
// the arguments left to right, OP_CALL_NATIVE with the argument count,
// and OP_POP for the discarded return value. Any other callee shape is
// a compile error.
func (c *Compiler) call(e *satlang.Call) {
	member, ok := e.Callee.(*satlang.MemberAccess)
	if !ok {
		c.report(e.Pos_, "unknown function call")
		return
	}
	object, ok := member.Object.(*satlang.Ident)
	if !ok {
		c.report(e.Pos_, "unknown function call")
		return
	}

	qualified := object.Name + "." + member.Member
	idx := c.makeConstant(Str(qualified), e.Pos_)
	c.emitBytes(OpGetGlobal, byte(idx))

	for _, arg := range e.Args {
		c.expression(arg)
	}

	c.emitBytes(OpCallNative, byte(len(e.Args)))
	c.emit(OpPop)
}
