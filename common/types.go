package common

import (
	"bytes"
	"strconv"
)

// Type identifies the data type of a column or Value in the relational
// (target-side) algebra. Load-time data arrives as BytesType and is cast to
// its declared type by a projection; every other type is a typed scalar.
type Type int8

const (
	// DefaultType marks an uninitialized Value.
	DefaultType Type = iota
	IntType          // 32-bit signed integer
	LongType         // 64-bit signed integer
	FloatType        // 32-bit IEEE-754
	DoubleType       // 64-bit IEEE-754
	StringType       // UTF-8 text
	BytesType        // raw byte sequence, the untyped storage-boundary representation
	BoolType
)

func (t Type) String() string {
	switch t {
	case IntType:
		return "int"
	case LongType:
		return "long"
	case FloatType:
		return "float"
	case DoubleType:
		return "double"
	case StringType:
		return "string"
	case BytesType:
		return "bytes"
	case BoolType:
		return "bool"
	}
	return "unknown"
}

// Numeric returns true for the four numeric types.
func (t Type) Numeric() bool {
	switch t {
	case IntType, LongType, FloatType, DoubleType:
		return true
	}
	return false
}

// Column describes one output column of a plan node: a name, a declared
// type, and whether NULL is admissible. Column identity across a plan is
// positional; the name is carried for display and for re-deriving schemas,
// never for resolution.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

func (c Column) String() string {
	if c.Nullable {
		return c.Name + ":" + c.Type.String() + "?"
	}
	return c.Name + ":" + c.Type.String()
}

// BytesColumn returns the synthetic nullable raw-bytes column used as the
// load-side input of a cast projection.
func BytesColumn(name string) Column {
	return Column{Name: name, Type: BytesType, Nullable: true}
}

// Row is an ordered sequence of values, positionally aligned with a schema.
type Row []Value

// Clone returns a copy of the row that does not alias the original's
// backing array. Values themselves are immutable and shared.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Value is a single data item in a row: a typed scalar, a raw byte
// sequence, or NULL-of-a-type. The tag distinguishes the raw-bytes variant
// from typed scalars so the cast projection's input contract is checkable.
type Value struct {
	t    Type
	null bool
	i    int64 // IntType, LongType and BoolType (0/1) payload
	f    float64
	s    string
	b    []byte
}

// NewIntValue creates a 32-bit integer Value.
func NewIntValue(v int32) Value {
	return Value{t: IntType, i: int64(v)}
}

// NewLongValue creates a 64-bit integer Value.
func NewLongValue(v int64) Value {
	return Value{t: LongType, i: v}
}

// NewFloatValue creates a 32-bit float Value.
func NewFloatValue(v float32) Value {
	return Value{t: FloatType, f: float64(v)}
}

// NewDoubleValue creates a 64-bit float Value.
func NewDoubleValue(v float64) Value {
	return Value{t: DoubleType, f: v}
}

// NewStringValue creates a text Value.
func NewStringValue(v string) Value {
	return Value{t: StringType, s: v}
}

// NewBytesValue creates a raw byte-sequence Value. The slice is not copied;
// callers that reuse buffers must copy first.
func NewBytesValue(v []byte) Value {
	return Value{t: BytesType, b: v}
}

// NewBoolValue creates a boolean Value.
func NewBoolValue(v bool) Value {
	val := Value{t: BoolType}
	if v {
		val.i = 1
	}
	return val
}

// NullValue creates the NULL of the given type.
func NullValue(t Type) Value {
	Assert(t != DefaultType, "NULL must carry a concrete type")
	return Value{t: t, null: true}
}

// Type returns the type tag of the Value.
func (v Value) Type() Type {
	return v.t
}

// IsNull returns true if the Value is NULL.
func (v Value) IsNull() bool {
	return v.null
}

// IsNil returns true if the Value is uninitialized. This is NOT to be
// confused with NULL, which is a concrete value of a concrete type.
func (v Value) IsNil() bool {
	return v.t == DefaultType
}

// IntValue returns the underlying (non-NULL) 32-bit integer.
func (v Value) IntValue() int32 {
	Assert(v.t == IntType, "type mismatch in IntValue")
	Assert(!v.null, "accessing value of NULL int")
	return int32(v.i)
}

// LongValue returns the underlying (non-NULL) 64-bit integer.
func (v Value) LongValue() int64 {
	Assert(v.t == LongType, "type mismatch in LongValue")
	Assert(!v.null, "accessing value of NULL long")
	return v.i
}

// FloatValue returns the underlying (non-NULL) 32-bit float.
func (v Value) FloatValue() float32 {
	Assert(v.t == FloatType, "type mismatch in FloatValue")
	Assert(!v.null, "accessing value of NULL float")
	return float32(v.f)
}

// DoubleValue returns the underlying (non-NULL) 64-bit float.
func (v Value) DoubleValue() float64 {
	Assert(v.t == DoubleType, "type mismatch in DoubleValue")
	Assert(!v.null, "accessing value of NULL double")
	return v.f
}

// StringValue returns the underlying (non-NULL) string.
func (v Value) StringValue() string {
	Assert(v.t == StringType, "type mismatch in StringValue")
	Assert(!v.null, "accessing value of NULL string")
	return v.s
}

// BytesValue returns the underlying (non-NULL) byte sequence.
func (v Value) BytesValue() []byte {
	Assert(v.t == BytesType, "type mismatch in BytesValue")
	Assert(!v.null, "accessing value of NULL bytes")
	return v.b
}

// BoolValue returns the underlying (non-NULL) boolean.
func (v Value) BoolValue() bool {
	Assert(v.t == BoolType, "type mismatch in BoolValue")
	Assert(!v.null, "accessing value of NULL bool")
	return v.i != 0
}

// Text returns the default textual representation of a non-NULL value, as
// written by the delimited sink. NULL has no text; the sink writes the
// empty string for it.
func (v Value) Text() string {
	Assert(!v.null, "NULL has no textual representation")
	switch v.t {
	case IntType, LongType:
		return strconv.FormatInt(v.i, 10)
	case FloatType:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case DoubleType:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringType:
		return v.s
	case BytesType:
		return string(v.b)
	case BoolType:
		if v.i != 0 {
			return "true"
		}
		return "false"
	}
	panic("uninitialized value")
}

// Compare compares two Values of the same type.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// NULL is considered less than non-NULL values.
func (v Value) Compare(other Value) int {
	Assert(v.t == other.t, "type mismatch in comparison: %s vs %s", v.t, other.t)

	if v.null && other.null {
		return 0
	}
	if v.null {
		return -1
	}
	if other.null {
		return 1
	}

	switch v.t {
	case IntType, LongType, BoolType:
		return compareOrdered(v.i, other.i)
	case FloatType, DoubleType:
		return compareOrdered(v.f, other.f)
	case StringType:
		return compareOrdered(v.s, other.s)
	case BytesType:
		return bytes.Compare(v.b, other.b)
	}
	panic("unreachable")
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
