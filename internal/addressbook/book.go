package addressbook

import "slices"

// AddressBook maps contact names to records and remembers insertion order.
// Every key equals the Name() of its record.
//
// It is not safe for concurrent use; the command loop owns it.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add stores r under its name. If the name already exists, r is merged into
// the stored record (phones appended, birthday replaced when r has one) and
// the stored record keeps its position. Add returns the stored record.
func (b *AddressBook) Add(r *Record) *Record {
	if existing, ok := b.records[r.name]; ok {
		if existing != r {
			existing.merge(r)
		}
		return existing
	}
	b.records[r.name] = r
	b.order = append(b.order, r.name)
	return r
}

// Find looks a record up by exact name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the named record. It reports whether anything was removed.
func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return true
}

// All returns every record in insertion order.
func (b *AddressBook) All() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}
