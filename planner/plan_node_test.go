package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

func twoColumnScans() (*ScanNode, *ScanNode) {
	left := NewScanNode("left.csv", ",", []common.Column{
		{Name: "a", Type: common.IntType},
		{Name: "b", Type: common.StringType},
	})
	right := NewScanNode("right.csv", ",", []common.Column{
		{Name: "c", Type: common.IntType},
		{Name: "d", Type: common.StringType},
	})
	return left, right
}

// Columns on a null-extended join side become nullable even when the
// child declared them non-nullable.
func TestJoinNullability(t *testing.T) {
	left, right := twoColumnScans()
	lk := []Expr{NewColumnRef(0, left.OutputColumns())}
	rk := []Expr{NewColumnRef(0, right.OutputColumns())}

	tests := []struct {
		joinType      JoinType
		leftNullable  bool
		rightNullable bool
	}{
		{Inner, false, false},
		{LeftOuter, false, true},
		{RightOuter, true, false},
		{FullOuter, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.joinType.String(), func(t *testing.T) {
			join := NewJoinNode(left, right, lk, rk, tt.joinType)
			cols := join.OutputColumns()
			require.Len(t, cols, 4)
			assert.Equal(t, tt.leftNullable, cols[0].Nullable)
			assert.Equal(t, tt.leftNullable, cols[1].Nullable)
			assert.Equal(t, tt.rightNullable, cols[2].Nullable)
			assert.Equal(t, tt.rightNullable, cols[3].Nullable)
		})
	}
}

// A scan builds its cast projection once and reuses it, however many
// executors ask.
func TestScanCastMemoized(t *testing.T) {
	scan, _ := twoColumnScans()
	first := scan.Cast()
	require.NotNil(t, first)
	assert.Same(t, first, scan.Cast())
	assert.Equal(t, scan.OutputColumns(), first.OutputColumns())
}

func TestSinkMaterializeOnce(t *testing.T) {
	left, _ := twoColumnScans()
	sink := NewSinkNode(left, "out.csv", ",")

	calls := 0
	rows := []common.Row{{common.NewIntValue(1), common.NewStringValue("x")}}
	run := func() ([]common.Row, error) {
		calls++
		return rows, nil
	}

	got, err := sink.Materialize(run)
	require.NoError(t, err)
	got2, err := sink.Materialize(run)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "materialization must run exactly once")
	assert.Equal(t, rows, got)
	assert.Equal(t, rows, got2)
}

func TestSinkMaterializeError(t *testing.T) {
	left, _ := twoColumnScans()
	sink := NewSinkNode(left, "out.csv", ",")

	boom := errors.New("disk full")
	calls := 0
	_, err := sink.Materialize(func() ([]common.Row, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	// A failed write is not retried behind the caller's back.
	_, err = sink.Materialize(func() ([]common.Row, error) {
		calls++
		return nil, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestAggregateOutputColumns(t *testing.T) {
	scan, _ := twoColumnScans()
	schema := scan.OutputColumns()

	agg := NewAggregateNode(scan,
		[]Expr{NewColumnRef(1, schema)},
		[]AggregateClause{
			{Type: AggCount, Expr: NewColumnRef(0, schema), Name: "count(a)", ResultType: common.LongType},
			{Type: AggMax, Expr: NewColumnRef(0, schema), Name: "max(a)", ResultType: common.IntType},
		})

	cols := agg.OutputColumns()
	require.Len(t, cols, 3)
	assert.Equal(t, "b", cols[0].Name)
	assert.Equal(t, "count(a)", cols[1].Name)
	assert.Equal(t, common.LongType, cols[1].Type)
	assert.True(t, cols[1].Nullable)
	assert.Equal(t, "max(a)", cols[2].Name)
	assert.Equal(t, common.IntType, cols[2].Type)
	assert.True(t, cols[2].Nullable)
}
