package compiler

import (
	"strconv"
	"testing"

	"loxvm/chunk"
	"loxvm/table"
	"loxvm/value"
)

func compileOK(t *testing.T, src string) *chunk.Chunk {
	t.Helper()
	var heap value.Heap
	strs := table.NewStrings(&heap)
	ch, errs := Compile(src, strs)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors for %q: %v", src, errs)
	}
	return ch
}

func TestCompileArithmeticSucceeds(t *testing.T) {
	compileOK(t, "print 1 + 2 * 3;")
}

func TestCompileBlockScoping(t *testing.T) {
	compileOK(t, `{ var a = 1; { var a = 2; print a; } print a; }`)
}

func TestCompileControlFlow(t *testing.T) {
	compileOK(t, `var x = 0; while (x < 3) { print x; x = x + 1; }`)
	compileOK(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	compileOK(t, `if (true) print 1; else print 2;`)
}

func TestShadowingInSameScopeIsAnError(t *testing.T) {
	var heap value.Heap
	strs := table.NewStrings(&heap)
	_, errs := Compile(`{ var a = 1; var a = 2; }`, strs)
	if len(errs) == 0 {
		t.Fatal("expected a compile error for redeclaration in the same scope")
	}
	found := false
	for _, e := range errs {
		if ce, ok := e.(CompileError); ok && ce.Message == "Already a variable with this name in this scope." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the exact redeclaration message, got: %v", errs)
	}
}

func TestGlobalRedefinitionIsAllowed(t *testing.T) {
	compileOK(t, "var a = 1; var a = 2; print a;")
}

func TestSelfReferentialLocalInitializerIsAnError(t *testing.T) {
	var heap value.Heap
	strs := table.NewStrings(&heap)
	_, errs := Compile(`{ var a = a; }`, strs)
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	found := false
	for _, e := range errs {
		if ce, ok := e.(CompileError); ok && ce.Message == "Can't read local variable in its own initializer." {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the exact self-reference message, got: %v", errs)
	}
}

func TestAssignmentToNonTargetIsRejected(t *testing.T) {
	var heap value.Heap
	strs := table.NewStrings(&heap)
	_, errs := Compile(`a * b = c;`, strs)
	if len(errs) == 0 {
		t.Fatal("expected 'a * b = c' to be a compile error")
	}
}

func TestSynchronizeSurfacesMultipleErrors(t *testing.T) {
	var heap value.Heap
	strs := table.NewStrings(&heap)
	_, errs := Compile("print ; print ;", strs)
	if len(errs) < 2 {
		t.Fatalf("expected synchronize() to let both statements report errors, got %d: %v", len(errs), errs)
	}
}

func TestTooManyLocalsIsAnError(t *testing.T) {
	var heap value.Heap
	strs := table.NewStrings(&heap)
	src := "{\n"
	for i := 0; i < maxLocals+1; i++ {
		src += "var v" + strconv.Itoa(i) + " = 0;\n"
	}
	src += "}\n"
	_, errs := Compile(src, strs)
	if len(errs) == 0 {
		t.Fatal("expected an error once the local array overflows")
	}
}
