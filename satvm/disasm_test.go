package satvm

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	chunk := compileSource(t, "import io\nlet x := 1\nif x then io.println \"y\"")

	var out bytes.Buffer
	Disassemble(&out, chunk, "test.sat")
	text := out.String()

	if !strings.HasPrefix(text, "== test.sat ==\n") {
		t.Fatalf("got %q", text)
	}
	for _, want := range []string{
		"OP_IMPORT",
		"'io'",
		"OP_CONSTANT",
		"OP_SET_LOCAL",
		"OP_GET_LOCAL",
		"OP_JUMP_IF_FALSE",
		"OP_POP",
		"OP_GET_GLOBAL",
		"'io.println'",
		"OP_CALL_NATIVE",
		"OP_HALT",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	// every line starts with a 4-digit offset after the header
	for _, line := range strings.Split(strings.TrimSpace(text), "\n")[1:] {
		if len(line) < 5 || line[4] != ' ' {
			t.Fatalf("bad line %q", line)
		}
	}
}

func TestDisassembleJumpTargets(t *testing.T) {
	chunk := compileSource(t, "let n := 1\nwhile n > 0 then n = n - 1")

	var out bytes.Buffer
	Disassemble(&out, chunk, "loop")
	text := out.String()

	if !strings.Contains(text, "OP_LOOP") {
		t.Fatalf("got %q", text)
	}
	// the backward jump resolves to the loop start at offset 4
	if !strings.Contains(text, "-> 4") {
		t.Fatalf("got %q", text)
	}
}
