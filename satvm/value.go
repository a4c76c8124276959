package satvm

import "strconv"

type ValueKind uint8

const (
	ValueNil ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueNativeFn
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNil:
		return "nil"
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueNativeFn:
		return "native fn"
	case ValueObject:
		return "object"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// NativeFunc is a compiled-in function callable from bytecode. The args
// slice points into the VM stack and must not be retained past return.
type NativeFunc struct {
	Name string
	Func func(vm *VM, args []Value) (Value, error)
}

// Value is the tagged union flowing through the stack, the locals and
// the constant pool.
type Value struct {
	Kind   ValueKind
	B      bool
	I      int64
	F      float64
	S      string
	Native *NativeFunc
	Obj    any // reserved for extension
}

func Nil() Value            { return Value{Kind: ValueNil} }
func Bool(b bool) Value     { return Value{Kind: ValueBool, B: b} }
func Int(i int64) Value     { return Value{Kind: ValueInt, I: i} }
func Float(f float64) Value { return Value{Kind: ValueFloat, F: f} }
func Str(s string) Value    { return Value{Kind: ValueString, S: s} }

func Native(fn *NativeFunc) Value {
	return Value{Kind: ValueNativeFn, Native: fn}
}

func (v Value) IsNumber() bool {
	return v.Kind == ValueInt || v.Kind == ValueFloat
}

// AsFloat coerces int to float; other kinds yield 0.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case ValueInt:
		return float64(v.I)
	case ValueFloat:
		return v.F
	}
	return 0
}

// Truthy: nil and false are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case ValueNil:
		return false
	case ValueBool:
		return v.B
	}
	return true
}

// Equal is structural equality. Cross-type comparisons are false; floats
// follow IEEE-754 so NaN never equals. Strings compare by payload; the
// VM interns pool strings on load so identical literals compare equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueNil:
		return true
	case ValueBool:
		return v.B == other.B
	case ValueInt:
		return v.I == other.I
	case ValueFloat:
		return v.F == other.F
	case ValueString:
		return v.S == other.S
	case ValueObject:
		return v.Obj == other.Obj
	}
	return false
}

// String renders the value the way io.print does.
func (v Value) String() string {
	switch v.Kind {
	case ValueNil:
		return "nil"
	case ValueBool:
		if v.B {
			return "true"
		}
		return "false"
	case ValueInt:
		return strconv.FormatInt(v.I, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case ValueString:
		return v.S
	case ValueNativeFn:
		return "<native fn>"
	case ValueObject:
		return "<object>"
	}
	return "<invalid>"
}
