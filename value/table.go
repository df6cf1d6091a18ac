package value

// KeyKind discriminates the two key kinds a Table may use.
type KeyKind uint8

const (
	KeyNumber KeyKind = iota
	KeyString
)

// Key is a table key restricted to number or string, per spec.md §3.1:
// "keys are themselves Values restricted to number or string in practice."
// Unlike Value, this restriction is enforced by the type itself rather than
// by a runtime check on construction.
type Key struct {
	kind KeyKind
	num  float64
	str  string
}

// NumberKey constructs an integer/float table key.
func NumberKey(n float64) Key { return Key{kind: KeyNumber, num: n} }

// StringKey constructs a string table key.
func StringKey(s string) Key { return Key{kind: KeyString, str: s} }

func (k Key) Kind() KeyKind   { return k.kind }
func (k Key) Number() float64 { return k.num }
func (k Key) String() string  { return k.str }

// entry is a single key/value pair, kept in caller/traversal order.
type entry struct {
	key Key
	val Value
}

// Table is a mapping from Key to Value, held in a fixed traversal order.
//
// Table itself carries no shape decision: whether the wire form ends up
// array-, sparse-, or map-shaped is computed by the Probe from the actual
// key set (spec.md §4.3), not declared by the caller. Array is sugar for
// the common case of building a Table with sequential integer keys 1..n.
type Table struct {
	entries []entry
}

// Array builds a Table with sequential integer keys 1..len(items), in the
// given order.
func Array(items ...Value) Table {
	entries := make([]entry, len(items))
	for i, v := range items {
		entries[i] = entry{key: NumberKey(float64(i + 1)), val: v}
	}

	return Table{entries: entries}
}

// Map builds a Table from key/value pairs in insertion order. Use this for
// string-keyed tables, non-contiguous integer keys, or any mix of the two
// — the Probe decides at encode time whether the result is cheaper to
// write as an array, a sparse key/value list, or a general map.
func Map(keys []Key, vals []Value) Table {
	entries := make([]entry, len(keys))
	for i := range keys {
		entries[i] = entry{key: keys[i], val: vals[i]}
	}

	return Table{entries: entries}
}

// Len returns the number of entries in the table.
func (t Table) Len() int { return len(t.entries) }

// Entries returns the table's key/value pairs in traversal order.
func (t Table) Entries() ([]Key, []Value) {
	keys := make([]Key, len(t.entries))
	vals := make([]Value, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.key
		vals[i] = e.val
	}

	return keys, vals
}

// Items returns the table's values in index order, assuming the table is
// array-shaped (sequential integer keys 1..Len()). It returns ok=false if
// the key set is not exactly 1..Len(), in which case the caller should use
// Entries instead.
func (t Table) Items() (items []Value, ok bool) {
	n := len(t.entries)
	items = make([]Value, n)
	seen := make([]bool, n)

	for _, e := range t.entries {
		if e.key.Kind() != KeyNumber {
			return nil, false
		}

		f := e.key.Number()
		i := int(f)
		if float64(i) != f || i < 1 || i > n || seen[i-1] {
			return nil, false
		}

		seen[i-1] = true
		items[i-1] = e.val
	}

	return items, true
}
