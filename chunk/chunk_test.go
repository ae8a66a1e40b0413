package chunk

import (
	"strings"
	"testing"

	"loxvm/value"
)

func TestWriteKeepsCodeAndLinesInSync(t *testing.T) {
	var c Chunk
	c.WriteOp(OpConstant, 1)
	c.Write(0, 1)
	c.WriteOp(OpReturn, 2)

	if len(c.Code) != len(c.Lines) {
		t.Fatalf("len(Code)=%d != len(Lines)=%d", len(c.Code), len(c.Lines))
	}
	if c.Lines[2] != 2 {
		t.Errorf("Lines[2] = %d, want 2", c.Lines[2])
	}
}

func TestAddConstantLimit(t *testing.T) {
	var c Chunk
	for i := 0; i < MaxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float64(i))); err != nil {
			t.Fatalf("unexpected error at constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(value.Number(1)); err == nil {
		t.Error("expected an error once the constant pool is full")
	}
}

func TestDisassemble(t *testing.T) {
	var c Chunk
	idx, _ := c.AddConstant(value.Number(7))
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(OpReturn, 1)

	out := c.Disassemble("test")
	if !strings.Contains(out, "OP_CONSTANT") || !strings.Contains(out, "OP_RETURN") {
		t.Errorf("Disassemble() missing expected opcodes:\n%s", out)
	}
}
