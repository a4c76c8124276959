package satvm

import "fmt"

// Opcodes are one byte each. Operand widths: constant and slot indexes
// are one byte, jump offsets are two bytes big-endian.
type Opcode byte

const (
	OpConstant Opcode = iota // 1B pool index
	OpPop
	OpGetLocal   // 1B slot
	OpSetLocal   // 1B slot
	OpGetGlobal  // 1B pool index of name
	OpCallNative // 1B arg count
	OpImport     // 1B pool index of module name
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpNegate
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpNot
	OpJump        // 2B forward offset
	OpJumpIfFalse // 2B forward offset; top of stack is not popped
	OpLoop        // 2B backward offset
	OpHalt
)

var opNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpCallNative:   "OP_CALL_NATIVE",
	OpImport:       "OP_IMPORT",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpModulo:       "OP_MODULO",
	OpNegate:       "OP_NEGATE",
	OpEqual:        "OP_EQUAL",
	OpNotEqual:     "OP_NOT_EQUAL",
	OpLess:         "OP_LESS",
	OpLessEqual:    "OP_LESS_EQUAL",
	OpGreater:      "OP_GREATER",
	OpGreaterEqual: "OP_GREATER_EQUAL",
	OpNot:          "OP_NOT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpHalt:         "OP_HALT",
}

func (op Opcode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", byte(op))
}
