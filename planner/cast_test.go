package planner

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

func rawRow(fields ...string) common.Row {
	row := make(common.Row, len(fields))
	for i, f := range fields {
		row[i] = common.NewBytesValue([]byte(f))
	}
	return row
}

func TestCastProjectionBasic(t *testing.T) {
	p := NewCastProjection([]common.Column{
		{Name: "name", Type: common.StringType, Nullable: true},
		{Name: "weight", Type: common.DoubleType, Nullable: true},
	})

	out, err := p.Apply(rawRow("alice", "12.5"))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alice", out[0].StringValue())
	assert.Equal(t, 12.5, out[1].DoubleValue())
}

func TestCastProjectionAllTypes(t *testing.T) {
	p := NewCastProjection([]common.Column{
		{Name: "i", Type: common.IntType, Nullable: true},
		{Name: "l", Type: common.LongType, Nullable: true},
		{Name: "f", Type: common.FloatType, Nullable: true},
		{Name: "d", Type: common.DoubleType, Nullable: true},
		{Name: "s", Type: common.StringType, Nullable: true},
		{Name: "b", Type: common.BytesType, Nullable: true},
		{Name: "t", Type: common.BoolType, Nullable: true},
	})

	out, err := p.Apply(rawRow("7", "9000000000", "1.5", "2.25", "hi", "raw", "true"))
	require.NoError(t, err)
	assert.Equal(t, int32(7), out[0].IntValue())
	assert.Equal(t, int64(9000000000), out[1].LongValue())
	assert.Equal(t, float32(1.5), out[2].FloatValue())
	assert.Equal(t, 2.25, out[3].DoubleValue())
	assert.Equal(t, "hi", out[4].StringValue())
	assert.Equal(t, []byte("raw"), out[5].BytesValue())
	assert.True(t, out[6].BoolValue())
}

// A NULL field casts to a typed NULL, never an error, whatever the target.
func TestCastProjectionNullPassthrough(t *testing.T) {
	p := NewCastProjection([]common.Column{
		{Name: "name", Type: common.StringType, Nullable: true},
		{Name: "weight", Type: common.DoubleType, Nullable: true},
	})

	out, err := p.Apply(common.Row{
		common.NewBytesValue([]byte("bob")),
		common.NullValue(common.BytesType),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", out[0].StringValue())
	assert.True(t, out[1].IsNull())
	assert.Equal(t, common.DoubleType, out[1].Type())
}

func TestCastProjectionDecodeError(t *testing.T) {
	p := NewCastProjection([]common.Column{
		{Name: "id", Type: common.IntType, Nullable: true},
	})

	_, err := p.Apply(rawRow("abc"))
	require.Error(t, err)

	castErr, ok := err.(*common.CastError)
	require.True(t, ok, "expected *common.CastError, got %T", err)
	assert.Equal(t, "id", castErr.Column)
	assert.Equal(t, 0, castErr.Ordinal)
	assert.Equal(t, []byte("abc"), castErr.Raw)
	assert.Equal(t, common.IntType, castErr.Target)
	assert.Contains(t, castErr.Error(), `column "id"`)
	assert.ErrorIs(t, err, strconv.ErrSyntax, "the strconv cause must stay reachable")
}

// Rows shorter than the declared schema fail at the first absent column;
// fields beyond the schema are ignored.
func TestCastProjectionRowWidth(t *testing.T) {
	p := NewCastProjection([]common.Column{
		{Name: "a", Type: common.StringType, Nullable: true},
		{Name: "b", Type: common.StringType, Nullable: true},
	})

	_, err := p.Apply(rawRow("only"))
	require.Error(t, err)
	castErr, ok := err.(*common.CastError)
	require.True(t, ok)
	assert.Equal(t, "b", castErr.Column)
	assert.Equal(t, 1, castErr.Ordinal)
	assert.Nil(t, castErr.Raw)

	out, err := p.Apply(rawRow("x", "y", "extra"))
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCastProjectionInputColumns(t *testing.T) {
	declared := []common.Column{
		{Name: "id", Type: common.IntType, Nullable: false},
		{Name: "name", Type: common.StringType, Nullable: true},
	}
	p := NewCastProjection(declared)

	in := p.InputColumns()
	require.Len(t, in, 2)
	for i, col := range in {
		assert.Equal(t, declared[i].Name, col.Name)
		assert.Equal(t, common.BytesType, col.Type)
		assert.True(t, col.Nullable)
	}
	assert.Equal(t, declared, p.OutputColumns())
}
