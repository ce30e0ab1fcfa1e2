package execution

import (
	"encoding/binary"
	"math"

	"github.com/tidwall/btree"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

type tableEntry[T any] struct {
	key   string
	value T
}

// RowTable is a generic key-value table for single-threaded execution
// operators (aggregates, joins), keyed by the serialized form of a row's
// key values. It is backed by an ordered tree rather than a Go map so
// that Iterate visits entries in a deterministic order, which keeps
// aggregate output and outer-join tail output stable run to run.
type RowTable[T any] struct {
	tree *btree.BTreeG[tableEntry[T]]
}

func NewRowTable[T any]() *RowTable[T] {
	less := func(a, b tableEntry[T]) bool {
		return a.key < b.key
	}
	return &RowTable[T]{tree: btree.NewBTreeG(less)}
}

// Set adds or replaces the value stored under key.
func (t *RowTable[T]) Set(key string, value T) {
	t.tree.Set(tableEntry[T]{key: key, value: value})
}

// Get returns the value stored under key.
func (t *RowTable[T]) Get(key string) (value T, exists bool) {
	entry, ok := t.tree.Get(tableEntry[T]{key: key})
	if !ok {
		var zero T
		return zero, false
	}
	return entry.value, true
}

func (t *RowTable[T]) Len() int {
	return t.tree.Len()
}

// Iterate loops over all entries in ascending key order and calls the
// provided callback for each; returning false stops the walk.
func (t *RowTable[T]) Iterate(iter func(key string, value T) bool) {
	t.tree.Scan(func(entry tableEntry[T]) bool {
		return iter(entry.key, entry.value)
	})
}

// EncodeKey serializes key values into a byte string for RowTable
// lookups. The encoding is injective: two key lists encode equal iff
// they are pairwise equal in type, nullness, and value. Variable-length
// fields are length-prefixed so adjacent fields cannot blur together.
func EncodeKey(vals []common.Value) string {
	var buf []byte
	for _, v := range vals {
		buf = append(buf, byte(v.Type()))
		if v.IsNull() {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		switch v.Type() {
		case common.IntType:
			buf = binary.BigEndian.AppendUint64(buf, uint64(v.IntValue()))
		case common.LongType:
			buf = binary.BigEndian.AppendUint64(buf, uint64(v.LongValue()))
		case common.FloatType:
			buf = binary.BigEndian.AppendUint64(buf, uint64(math.Float32bits(v.FloatValue())))
		case common.DoubleType:
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v.DoubleValue()))
		case common.BoolType:
			if v.BoolValue() {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case common.StringType:
			s := v.StringValue()
			buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
			buf = append(buf, s...)
		case common.BytesType:
			b := v.BytesValue()
			buf = binary.BigEndian.AppendUint32(buf, uint32(len(b)))
			buf = append(buf, b...)
		default:
			common.Assert(false, "cannot encode uninitialized value")
		}
	}
	return string(buf)
}
