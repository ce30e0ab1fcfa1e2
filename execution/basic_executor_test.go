package execution

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// writeResource writes a delimited text file under the test's temp
// directory and returns its path.
func writeResource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// peopleScan builds a scan over a fresh resource typed
// (name string, age int, weight double).
func peopleScan(t *testing.T, content string) *planner.ScanNode {
	t.Helper()
	path := writeResource(t, "people.csv", content)
	return planner.NewScanNode(path, ",", []common.Column{
		{Name: "name", Type: common.StringType, Nullable: true},
		{Name: "age", Type: common.IntType, Nullable: true},
		{Name: "weight", Type: common.DoubleType, Nullable: true},
	})
}

// collect initializes the executor and drains it, failing the test on
// any execution error.
func collect(t *testing.T, exec Executor, ctx *ExecutorContext) []common.Row {
	t.Helper()
	require.NoError(t, exec.Init(ctx))
	var rows []common.Row
	for exec.Next() {
		rows = append(rows, exec.Current())
	}
	require.NoError(t, exec.Error())
	return rows
}

func TestBasicExecutor_Scan(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,,\n")
	exec := NewDelimitedScanExecutor(scan)
	ctx := NewExecutorContext(nil, CastFailFast, false)

	rows := collect(t, exec, ctx)
	require.Len(t, rows, 2)

	assert.Equal(t, "alice", rows[0][0].StringValue())
	assert.Equal(t, int32(30), rows[0][1].IntValue())
	assert.Equal(t, 62.5, rows[0][2].DoubleValue())

	assert.Equal(t, "bob", rows[1][0].StringValue())
	assert.True(t, rows[1][1].IsNull(), "empty field should scan as NULL")
	assert.True(t, rows[1][2].IsNull())
	assert.Equal(t, common.IntType, rows[1][1].Type(), "NULL keeps the declared column type")

	// Calling Init again restarts the scan from the top.
	again := collect(t, exec, ctx)
	assert.Len(t, again, 2)
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_ScanCastFailFast(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,old,70\ncarol,40,50\n")
	exec := NewDelimitedScanExecutor(scan)
	require.NoError(t, exec.Init(NewExecutorContext(nil, CastFailFast, false)))

	require.True(t, exec.Next(), "the first record is well formed")
	assert.False(t, exec.Next(), "the malformed record aborts the scan")

	var castErr *common.CastError
	require.ErrorAs(t, exec.Error(), &castErr)
	assert.Equal(t, "age", castErr.Column)
	assert.Equal(t, "old", string(castErr.Raw))

	assert.False(t, exec.Next(), "a failed executor stays failed")
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_ScanCastSkipAndLog(t *testing.T) {
	var logged bytes.Buffer
	logger := log.NewLogfmtLogger(&logged)

	scan := peopleScan(t, "alice,30,62.5\nbob,old,70\ncarol,forty,50\ndave,40,.5\n")
	exec := NewDelimitedScanExecutor(scan)

	rows := collect(t, exec, NewExecutorContext(logger, CastSkipAndLog, false))
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0][0].StringValue())
	assert.Equal(t, "dave", rows[1][0].StringValue())

	assert.Equal(t, int64(2), exec.Skipped())
	assert.Contains(t, logged.String(), "dropping row that failed to cast")
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_ScanShortRows(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob\n")
	exec := NewDelimitedScanExecutor(scan)

	require.NoError(t, exec.Init(NewExecutorContext(nil, CastFailFast, false)))
	require.True(t, exec.Next())
	assert.False(t, exec.Next(), "a short record is a cast failure by default")
	var castErr *common.CastError
	require.ErrorAs(t, exec.Error(), &castErr)
	assert.Equal(t, "age", castErr.Column)
	assert.Nil(t, castErr.Raw, "the field is missing, not malformed")

	// With padding enabled the same record scans with NULL tail columns.
	rows := collect(t, exec, NewExecutorContext(nil, CastFailFast, true))
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[1][0].StringValue())
	assert.True(t, rows[1][1].IsNull())
	assert.True(t, rows[1][2].IsNull())
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_Filter(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,17,70\ncarol,,50\ndave,18,81\n")
	pred := planner.NewComparisonExpression(
		planner.NewColumnRef(1, scan.OutputColumns()),
		planner.NewConstant(common.NewIntValue(18)),
		planner.GreaterThanOrEqual,
	)
	exec := NewFilter(planner.NewFilterNode(scan, pred), NewDelimitedScanExecutor(scan))

	rows := collect(t, exec, NewExecutorContext(nil, CastFailFast, false))
	require.Len(t, rows, 2, "17 fails the cut and the NULL age is not definitely true")
	assert.Equal(t, "alice", rows[0][0].StringValue())
	assert.Equal(t, "dave", rows[1][0].StringValue())
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_Projection(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,25,70\n")
	exprs := []planner.Expr{
		planner.NewColumnRef(2, scan.OutputColumns()),
		planner.NewColumnRef(0, scan.OutputColumns()),
	}
	exec := NewProjectionExecutor(planner.NewProjectionNode(scan, exprs), NewDelimitedScanExecutor(scan))

	rows := collect(t, exec, NewExecutorContext(nil, CastFailFast, false))
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 2)
	assert.Equal(t, 62.5, rows[0][0].DoubleValue())
	assert.Equal(t, "alice", rows[0][1].StringValue())
	assert.Equal(t, 70.0, rows[1][0].DoubleValue())
	require.NoError(t, exec.Close())
}

func TestBasicExecutor_Limit(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,25,70\ncarol,40,50\n")
	ctx := NewExecutorContext(nil, CastFailFast, false)

	exec := NewLimitExecutor(planner.NewLimitNode(scan, 2), NewDelimitedScanExecutor(scan))
	rows := collect(t, exec, ctx)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0][0].StringValue())
	assert.Equal(t, "bob", rows[1][0].StringValue())
	require.NoError(t, exec.Close())

	zero := NewLimitExecutor(planner.NewLimitNode(scan, 0), NewDelimitedScanExecutor(scan))
	assert.Empty(t, collect(t, zero, ctx))
	require.NoError(t, zero.Close())
}

func TestBasicExecutor_Build(t *testing.T) {
	scan := peopleScan(t, "alice,30,62.5\nbob,17,70\n")
	pred := planner.NewComparisonExpression(
		planner.NewColumnRef(1, scan.OutputColumns()),
		planner.NewConstant(common.NewIntValue(18)),
		planner.GreaterThanOrEqual,
	)
	plan := planner.NewLimitNode(planner.NewFilterNode(scan, pred), 10)

	exec, err := Build(plan)
	require.NoError(t, err)
	rows := collect(t, exec, NewExecutorContext(nil, CastFailFast, false))
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0][0].StringValue())
	require.NoError(t, exec.Close())

	_, err = Build(&unknownNode{})
	assert.True(t, common.IsPlanError(err, common.UnsupportedOperatorError))
}

// unknownNode is a plan node with no physical implementation.
type unknownNode struct{}

func (n *unknownNode) OutputColumns() []common.Column { return nil }
func (n *unknownNode) Children() []planner.PlanNode   { return nil }
func (n *unknownNode) String() string                 { return "Unknown" }
