// Package table implements the open-addressed, tombstone-bearing hash
// table shared by the VM's globals environment and the string intern
// set. Both uses need the same probe/growth/tombstone discipline, so
// there is exactly one implementation of it, not one per call site.
package table

import "loxvm/value"

const maxLoad = 0.75

// entry is one slot. A slot with a nil Key and a nil Value is empty and
// terminates a probe. A slot with a nil Key and a non-nil Value (the
// Bool(true) tombstone marker) is a deleted entry: it still counts
// toward load factor but can be reused on insert.
type entry struct {
	key *value.Obj
	val value.Value
}

// Table is an open-addressed hash table keyed by interned string
// references. Because every key is already interned, key comparison
// during lookup is pointer equality, never a byte comparison.
type Table struct {
	count   int
	entries []entry
}

// Count returns the number of occupied slots: live entries plus the
// tombstones left by Delete, which count toward the load factor until
// the next resize drops them.
func (t *Table) Count() int { return t.count }

// Get looks up key and reports whether it was present.
func (t *Table) Get(key *value.Obj) (value.Value, bool) {
	if t.count == 0 {
		return value.Nil, false
	}
	e := t.findEntry(t.entries, key)
	if e.key == nil {
		return value.Nil, false
	}
	return e.val, true
}

// Set inserts or overwrites key's value. It returns true iff key was not
// already present, matching clox's Table_set contract.
func (t *Table) Set(key *value.Obj, val value.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	idx := t.findIndex(t.entries, key)
	e := &t.entries[idx]
	isNewKey := e.key == nil
	if isNewKey && e.val.IsNil() {
		t.count++
	}
	e.key = key
	e.val = val
	return isNewKey
}

// Delete removes key, leaving a tombstone so later probes that passed
// through this slot still find entries inserted after it. Reports
// whether key was present.
func (t *Table) Delete(key *value.Obj) bool {
	if t.count == 0 {
		return false
	}
	idx := t.findIndex(t.entries, key)
	e := &t.entries[idx]
	if e.key == nil {
		return false
	}
	e.key = nil
	e.val = value.Bool(true) // tombstone
	return true
}

// FindString looks up an interned string by its raw bytes and hash,
// without first constructing an *value.Obj for it — this is the
// operation string interning is built on (table.c's Table_findString).
func (t *Table) FindString(chars []byte, hash uint32) *value.Obj {
	if t.count == 0 {
		return nil
	}
	capacity := len(t.entries)
	index := int(hash) % capacity
	for {
		e := &t.entries[index]
		if e.key == nil {
			if e.val.IsNil() {
				return nil
			}
		} else if len(e.key.Chars) == len(chars) && e.key.Hash == hash && string(e.key.Chars) == string(chars) {
			return e.key
		}
		index = (index + 1) % capacity
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}

func (t *Table) adjustCapacity(capacity int) {
	newEntries := make([]entry, capacity)

	t.count = 0
	for _, src := range t.entries {
		if src.key == nil {
			continue
		}
		dst := t.findIndex(newEntries, src.key)
		newEntries[dst] = src
		t.count++
	}
	t.entries = newEntries
}

// findIndex returns the slot index findEntry would return, so callers
// that need to both read a slot and know its index (Set, Delete) don't
// duplicate the probe loop.
func (t *Table) findIndex(entries []entry, key *value.Obj) int {
	capacity := len(entries)
	index := int(key.Hash) % capacity
	var tombstone = -1
	for {
		e := &entries[index]
		switch {
		case e.key == nil && e.val.IsNil():
			if tombstone != -1 {
				return tombstone
			}
			return index
		case e.key == nil:
			// tombstone: remember the first one seen, keep probing in
			// case the key is further along.
			if tombstone == -1 {
				tombstone = index
			}
		case e.key == key:
			return index
		}
		index = (index + 1) % capacity
	}
}

func (t *Table) findEntry(entries []entry, key *value.Obj) entry {
	if len(entries) == 0 {
		return entry{}
	}
	return entries[t.findIndex(entries, key)]
}
