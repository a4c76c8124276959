package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/satorilang/satori/satvm"
)

func TestEval(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		eval Eval,
	) {
		result, err := eval(t.Context(), "code_size + constant_count", map[string]any{
			"code_size":      10,
			"constant_count": 2,
		})
		if err != nil {
			t.Fatal(err)
		}
		if result != "12" {
			t.Fatalf("got %q", result)
		}
	})
}

func TestEvalBadExpression(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		eval Eval,
	) {
		_, err := eval(t.Context(), "nope +", nil)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestVMSnapshot(t *testing.T) {
	chunk := satvm.NewChunk()
	chunk.AddConstant(satvm.Int(1))
	chunk.WriteOp(satvm.OpConstant)
	chunk.Write(0)
	chunk.WriteOp(satvm.OpSetLocal)
	chunk.Write(0)
	chunk.WriteOp(satvm.OpHalt)

	vm := satvm.NewVM(chunk)
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}

	snapshot := VMSnapshot(vm, chunk)
	if snapshot["local_count"] != 1 {
		t.Fatalf("got %v", snapshot["local_count"])
	}
	if snapshot["code_size"] != 5 {
		t.Fatalf("got %v", snapshot["code_size"])
	}

	dscope.New(new(Module)).Call(func(
		eval Eval,
	) {
		result, err := eval(t.Context(), "local_count == 1", snapshot)
		if err != nil {
			t.Fatal(err)
		}
		if result != "True" {
			t.Fatalf("got %q", result)
		}
	})
}
