// Package bencode decodes bencoded documents into a generic value tree.
package bencode

// Value is one node of a decoded document. It is one of Integer, ByteString,
// List or *Dict.
type Value interface {
	isValue()
}

type Integer int64

// ByteString holds raw bytes; the content is not guaranteed to be text.
type ByteString []byte

type List []Value

func (Integer) isValue()    {}
func (ByteString) isValue() {}
func (List) isValue()       {}
func (*Dict) isValue()      {}

func (b ByteString) String() string {
	return string(b)
}

// Entry is a single key/value pair of a Dict.
type Entry struct {
	Key   string
	Value Value
}

// Dict keeps its entries in encoded order. It is never modified once built.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict builds a dictionary from entries. A repeated key replaces the
// earlier value but keeps the position where the key first appeared.
func NewDict(entries ...Entry) *Dict {
	d := &Dict{
		keys:   make([]string, 0, len(entries)),
		values: make(map[string]Value, len(entries)),
	}
	for _, e := range entries {
		d.set(e.Key, e.Value)
	}
	return d
}

func (d *Dict) set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in encoded order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Entries returns the key/value pairs in encoded order.
func (d *Dict) Entries() []Entry {
	if d == nil {
		return nil
	}
	entries := make([]Entry, len(d.keys))
	for i, k := range d.keys {
		entries[i] = Entry{Key: k, Value: d.values[k]}
	}
	return entries
}
