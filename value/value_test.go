package value

import "testing"

func TestIsFalsy(t *testing.T) {
	cases := []struct {
		v     Value
		falsy bool
	}{
		{Nil, true},
		{Bool(false), true},
		{Bool(true), false},
		{Number(0), false},
		{Number(1), false},
	}
	for _, c := range cases {
		if got := c.v.IsFalsy(); got != c.falsy {
			t.Errorf("IsFalsy(%v) = %v, want %v", c.v, got, c.falsy)
		}
	}
}

func TestEqualDifferentKinds(t *testing.T) {
	if Equal(Nil, Bool(false)) {
		t.Error("Nil should not equal Bool(false)")
	}
	if !Equal(Nil, Nil) {
		t.Error("Nil should equal Nil")
	}
	if !Equal(Number(1), Number(1)) {
		t.Error("Number(1) should equal Number(1)")
	}
	if Equal(Number(1), Number(2)) {
		t.Error("Number(1) should not equal Number(2)")
	}
}

func TestEqualObjectsByReference(t *testing.T) {
	var h Heap
	a := h.NewString([]byte("hi"), FNV1a32([]byte("hi")))
	b := h.NewString([]byte("hi"), FNV1a32([]byte("hi")))
	// Without interning, two separately allocated objects with the same
	// bytes are distinct references.
	if Equal(FromObj(a), FromObj(b)) {
		t.Error("unexpected reference equality for distinct allocations")
	}
	if !Equal(FromObj(a), FromObj(a)) {
		t.Error("an object should equal itself")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(3.5), "3.5"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
