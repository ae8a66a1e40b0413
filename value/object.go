package value

// ObjKind tags the variant of a heap-allocated Obj. String is the only
// variant the core language needs (no functions, closures, or classes).
type ObjKind uint8

const ObjString ObjKind = iota

// Obj is a heap-allocated object. Every Obj is linked into exactly one
// Heap's chain from the moment it is allocated until the heap releases
// it, which is the mechanism a VM uses to free everything it allocated
// without a tracing collector.
type Obj struct {
	Kind  ObjKind
	Chars []byte
	Hash  uint32
	next  *Obj
}

// Heap allocates and tracks every object a VM creates. It has no
// incremental collector: objects live until the Heap itself is
// released, which keeps object lifetime simple for short scripts and
// REPL sessions.
type Heap struct {
	head *Obj
}

// NewString allocates a new string object of the given bytes and hash
// and links it into the heap chain. Callers that want interning should
// go through table.Strings.Intern instead of calling this directly for
// every occurrence of the same bytes.
func (h *Heap) NewString(chars []byte, hash uint32) *Obj {
	o := &Obj{Kind: ObjString, Chars: chars, Hash: hash, next: h.head}
	h.head = o
	return o
}

// Release drops every object the heap is holding. Objects are only ever
// freed in bulk, at VM shutdown.
func (h *Heap) Release() {
	h.head = nil
}

// FNV1a32 computes the 32-bit FNV-1a hash of data, used to key interned
// strings.
func FNV1a32(data []byte) uint32 {
	const (
		offsetBasis uint32 = 2166136261
		prime       uint32 = 16777619
	)
	hash := offsetBasis
	for _, b := range data {
		hash ^= uint32(b)
		hash *= prime
	}
	return hash
}
