package satvm

import (
	"bytes"
	"testing"

	"github.com/satorilang/satori/satlang"
)

func benchChunk(b *testing.B, source string) *Chunk {
	b.Helper()
	parser := satlang.NewParser("bench.sat", source)
	program, err := parser.Parse()
	if err != nil {
		b.Fatal("parse failed")
	}
	chunk, err := Compile(program)
	if err != nil {
		b.Fatal(err)
	}
	return chunk
}

func BenchmarkVMCountdownLoop(b *testing.B) {
	chunk := benchChunk(b, `
let n := 1000
while n > 0 then
  n = n - 1
`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm := NewVM(chunk)
		if err := vm.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVMArithmetic(b *testing.B) {
	chunk := benchChunk(b, `
let x := 1
let y := 2
let z := x * 2 + y * 3 - x % 1
`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm := NewVM(chunk)
		if err := vm.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTableSet(b *testing.B) {
	keys := make([]string, 256)
	for i := range keys {
		keys[i] = "module.member" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table := NewTable()
		for _, key := range keys {
			table.Set(key, Int(1))
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	source := `
import io
let a := 1
let c := a * 2 + 3
while c > 0 then
  c = c - 1
`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		parser := satlang.NewParser("bench.sat", source)
		var diag bytes.Buffer
		parser.SetDiagnostics(&diag)
		program, err := parser.Parse()
		if err != nil {
			b.Fatal("parse failed")
		}
		if _, err := Compile(program); err != nil {
			b.Fatal(err)
		}
	}
}
