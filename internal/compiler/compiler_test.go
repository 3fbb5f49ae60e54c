package compiler

import (
	"strings"
	"testing"
)

func TestCompileEmitsPrologueAndEpilogue(t *testing.T) {
	out, err := CompileToString("function main() { return 10; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{".global main", "main:", "ldr r0, =10", "pop {fp, pc}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCompileReturnsParseError(t *testing.T) {
	_, err := CompileToString("@@@")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestCompileReturnsUndefinedVariableError(t *testing.T) {
	_, err := CompileToString("function main() { return x; }")
	if err == nil {
		t.Fatalf("expected an undefined variable error")
	}
	if !strings.Contains(err.Error(), "Undefined variable: x") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestCompileReturnsArityError(t *testing.T) {
	_, err := CompileToString("function f(a,b,c,d,e) { return a; }")
	if err == nil {
		t.Fatalf("expected an arity error")
	}
	if !strings.Contains(err.Error(), "More than 4 params is not supported") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestCompileWritesOneNewlineTerminatedLinePerInstruction(t *testing.T) {
	out, err := CompileToString("function main() { return 1; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected output to end with a trailing newline")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 8 {
		t.Fatalf("expected at least 8 emitted lines, got %d:\n%s", len(lines), out)
	}
}
