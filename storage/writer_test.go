package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := CreateDelimited(path, ",")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{
		common.NewStringValue("alice"),
		common.NewDoubleValue(12.5),
		common.NewIntValue(7),
	}))
	require.NoError(t, w.WriteRow(common.Row{
		common.NewStringValue("bob"),
		common.NullValue(common.DoubleType),
		common.NullValue(common.IntType),
	}))
	assert.Equal(t, int64(2), w.Rows())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice,12.5,7\nbob,,\n", string(data))

	// What the writer emitted, the reader splits back identically: NULLs
	// come home as NULLs and the trailing empty field survives.
	rows := readAll(t, path, ",")
	require.Len(t, rows, 2)
	require.Len(t, rows[1], 3)
	assert.Equal(t, "bob", fieldText(t, rows[1][0]))
	assert.True(t, rows[1][1].IsNull())
	assert.True(t, rows[1][2].IsNull())
}

func TestWriterValueForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.tsv")

	w, err := CreateDelimited(path, "\t")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{
		common.NewLongValue(-9000000000),
		common.NewFloatValue(1.5),
		common.NewBoolValue(true),
		common.NewBytesValue([]byte("raw")),
	}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-9000000000\t1.5\ttrue\traw\n", string(data))
}

// Nothing appears at the target path until Close, and a successful Close
// leaves no temporary files behind.
func TestWriterAtomicPublish(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	w, err := CreateDelimited(path, ",")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{common.NewStringValue("x")}))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "target must not exist before Close")

	require.NoError(t, w.Close())
	_, err = os.Stat(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriterAbortKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	w, err := CreateDelimited(path, ",")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{common.NewStringValue("new")}))
	require.NoError(t, w.Abort())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))

	// Abort after Close is a no-op, so a deferred Abort is always safe.
	w, err = CreateDelimited(path, ",")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{common.NewStringValue("new")}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Abort())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestWriterGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.gz")

	w, err := CreateDelimited(path, ",")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(common.Row{
		common.NewStringValue("alice"),
		common.NewIntValue(30),
	}))
	require.NoError(t, w.Close())

	// The published file really is gzip.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])

	rows := readAll(t, path, ",")
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", fieldText(t, rows[0][0]))
	assert.Equal(t, "30", fieldText(t, rows[0][1]))
}

func TestWriterEmptyDelimiter(t *testing.T) {
	_, err := CreateDelimited(filepath.Join(t.TempDir(), "x.csv"), "")
	require.Error(t, err)
	assert.True(t, common.IsPlanError(err, common.ResourceError), "got %v", err)
}
