package table

import "loxvm/value"

// Strings is the VM's string intern set: a Table used as a set (every
// value stored is value.Nil) plus the Heap that owns the underlying
// byte storage. Interning guarantees that any two source occurrences of
// the same byte sequence become the same *value.Obj, so Value equality
// for strings can be a pointer comparison.
type Strings struct {
	table Table
	heap  *value.Heap
}

// NewStrings creates an intern set backed by heap.
func NewStrings(heap *value.Heap) *Strings {
	return &Strings{heap: heap}
}

// Intern returns the canonical *value.Obj for the given bytes, copying
// them and allocating a new object only the first time those bytes are
// seen.
func (s *Strings) Intern(chars []byte) *value.Obj {
	hash := value.FNV1a32(chars)
	if existing := s.table.FindString(chars, hash); existing != nil {
		return existing
	}
	owned := make([]byte, len(chars))
	copy(owned, chars)
	obj := s.heap.NewString(owned, hash)
	s.table.Set(obj, value.Nil)
	return obj
}
