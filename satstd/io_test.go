package satstd

import (
	"bytes"
	"testing"

	"github.com/satorilang/satori/satvm"
)

// testVM builds a VM with an empty chunk, output captured, and the
// given module initialized.
func testVM(t *testing.T, init func(vm *satvm.VM)) (*satvm.VM, *bytes.Buffer) {
	t.Helper()
	chunk := satvm.NewChunk()
	chunk.WriteOp(satvm.OpHalt)
	vm := satvm.NewVM(chunk)
	var out bytes.Buffer
	vm.SetStdout(&out)
	init(vm)
	return vm, &out
}

func callNative(t *testing.T, vm *satvm.VM, name string, args ...satvm.Value) satvm.Value {
	t.Helper()
	fn, ok := vm.Globals().Get(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	ret, err := fn.Native.Call(vm, args)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	return ret
}

func TestIOPrintln(t *testing.T) {
	vm, out := testVM(t, ioModuleInit)

	for _, tt := range []struct {
		args     []satvm.Value
		expected string
	}{
		{[]satvm.Value{satvm.Str("hello")}, "hello\n"},
		{[]satvm.Value{satvm.Str("x={}"), satvm.Int(1)}, "x=1\n"},
		{[]satvm.Value{satvm.Str("{} {}"), satvm.Int(1), satvm.Bool(true)}, "1 true\n"},
		{[]satvm.Value{satvm.Int(42)}, "42\n"},
		{[]satvm.Value{satvm.Float(2.5)}, "2.5\n"},
		{[]satvm.Value{satvm.Nil()}, "nil\n"},
		{nil, "\n"},
	} {
		out.Reset()
		ret := callNative(t, vm, "io.println", tt.args...)
		if out.String() != tt.expected {
			t.Fatalf("got %q, want %q", out.String(), tt.expected)
		}
		if ret.Kind != satvm.ValueNil {
			t.Fatalf("println returns nil, got %v", ret)
		}
	}
}

func TestIOPrint(t *testing.T) {
	vm, out := testVM(t, ioModuleInit)

	callNative(t, vm, "io.print", satvm.Str("a"))
	callNative(t, vm, "io.print", satvm.Str("{}{}"), satvm.Int(1), satvm.Int(2))
	callNative(t, vm, "io.print")
	if out.String() != "a12" {
		t.Fatalf("got %q", out.String())
	}
}

func TestIOFormatBracesWithoutPair(t *testing.T) {
	vm, out := testVM(t, ioModuleInit)

	// a lone brace is literal; only the `{}` pair interpolates
	callNative(t, vm, "io.println", satvm.Str("a{b}c{}"), satvm.Int(7))
	if out.String() != "a{b}c7\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestStringToUpperLower(t *testing.T) {
	vm, _ := testVM(t, stringModuleInit)

	ret := callNative(t, vm, "string.to_upper", satvm.Str("Hello"))
	if ret.Kind != satvm.ValueString || ret.S != "HELLO" {
		t.Fatalf("got %v", ret)
	}

	ret = callNative(t, vm, "string.to_lower", satvm.Str("Hello"))
	if ret.S != "hello" {
		t.Fatalf("got %v", ret)
	}
}

func TestStringArgumentErrors(t *testing.T) {
	vm, _ := testVM(t, stringModuleInit)

	fn, _ := vm.Globals().Get("string.to_upper")
	if _, err := fn.Native.Call(vm, nil); err == nil {
		t.Fatal("expected arity error")
	}
	if _, err := fn.Native.Call(vm, []satvm.Value{satvm.Int(1)}); err == nil {
		t.Fatal("expected type error")
	}
}
