package planner

import (
	"strconv"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// CastProjection converts rows of nullable raw byte sequences, as
// produced by a delimited scan, into rows of a declared schema. It is
// stateless after construction and safe to share across rows and
// goroutines.
//
// Per-row policy:
//   - a NULL input field casts to NULL of the declared type, never an error;
//   - a non-NULL field that fails to decode yields a CastError naming the
//     column and the offending bytes; whether that fails the run or skips
//     the row is the caller's choice, not the projection's;
//   - fields beyond the declared schema are ignored, and a row shorter
//     than the schema yields a CastError at the first absent column.
type CastProjection struct {
	columns []common.Column
	input   []common.Column
	casts   []castFunc
}

type castFunc func(raw []byte) (common.Value, error)

func NewCastProjection(columns []common.Column) *CastProjection {
	input := make([]common.Column, len(columns))
	casts := make([]castFunc, len(columns))
	for i, col := range columns {
		input[i] = common.BytesColumn(col.Name)
		casts[i] = castTo(col.Type)
	}
	return &CastProjection{columns: columns, input: input, casts: casts}
}

// OutputColumns returns the declared schema the projection casts into.
func (p *CastProjection) OutputColumns() []common.Column {
	return p.columns
}

// InputColumns returns the synthetic load-side schema: one nullable
// raw-bytes column per declared column.
func (p *CastProjection) InputColumns() []common.Column {
	return p.input
}

// Apply casts one raw row into the declared schema. The input row must
// hold only raw-bytes values and NULLs; anything else is a programming
// error upstream.
func (p *CastProjection) Apply(row common.Row) (common.Row, error) {
	out := make(common.Row, len(p.columns))
	for i, col := range p.columns {
		if i >= len(row) {
			return nil, &common.CastError{Column: col.Name, Ordinal: i, Target: col.Type}
		}
		val := row[i]
		common.Assert(val.Type() == common.BytesType, "cast input must be raw bytes, got %s", val.Type())
		if val.IsNull() {
			out[i] = common.NullValue(col.Type)
			continue
		}
		cast, err := p.casts[i](val.BytesValue())
		if err != nil {
			return nil, &common.CastError{
				Column:  col.Name,
				Ordinal: i,
				Raw:     val.BytesValue(),
				Target:  col.Type,
				Err:     err,
			}
		}
		out[i] = cast
	}
	return out, nil
}

// DecodeText decodes the textual form of a value as the given type, by
// the same rules the projection applies to scanned fields. Plan
// construction uses it to coerce literals against column types.
func DecodeText(text string, t common.Type) (common.Value, error) {
	return castTo(t)([]byte(text))
}

func castTo(t common.Type) castFunc {
	switch t {
	case common.IntType:
		return func(raw []byte) (common.Value, error) {
			v, err := strconv.ParseInt(string(raw), 10, 32)
			if err != nil {
				return common.Value{}, err
			}
			return common.NewIntValue(int32(v)), nil
		}
	case common.LongType:
		return func(raw []byte) (common.Value, error) {
			v, err := strconv.ParseInt(string(raw), 10, 64)
			if err != nil {
				return common.Value{}, err
			}
			return common.NewLongValue(v), nil
		}
	case common.FloatType:
		return func(raw []byte) (common.Value, error) {
			v, err := strconv.ParseFloat(string(raw), 32)
			if err != nil {
				return common.Value{}, err
			}
			return common.NewFloatValue(float32(v)), nil
		}
	case common.DoubleType:
		return func(raw []byte) (common.Value, error) {
			v, err := strconv.ParseFloat(string(raw), 64)
			if err != nil {
				return common.Value{}, err
			}
			return common.NewDoubleValue(v), nil
		}
	case common.StringType:
		return func(raw []byte) (common.Value, error) {
			return common.NewStringValue(string(raw)), nil
		}
	case common.BytesType:
		return func(raw []byte) (common.Value, error) {
			return common.NewBytesValue(raw), nil
		}
	case common.BoolType:
		return func(raw []byte) (common.Value, error) {
			v, err := strconv.ParseBool(string(raw))
			if err != nil {
				return common.Value{}, err
			}
			return common.NewBoolValue(v), nil
		}
	}
	panic("unknown column type")
}
