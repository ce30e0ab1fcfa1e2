package storage

import (
	"bufio"
	"io"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// DelimitedWriter writes rows to a delimited text resource. All output
// goes to a temporary file that atomically replaces the target path on
// Close, so readers of the path never observe a half-written resource
// and a failed run leaves whatever was there before untouched.
//
// NULL values are written as the empty field; everything else uses the
// value's default textual form. Delimiter or newline bytes inside field
// text are not escaped, matching what the reader side can split.
type DelimitedWriter struct {
	path      string
	delimiter string

	pending *renameio.PendingFile
	gz      *gzip.Writer
	buf     *bufio.Writer

	rows int64
}

// CreateDelimited opens a writer targeting path. A ".gz" suffix selects
// gzip compression, mirroring OpenDelimited.
func CreateDelimited(path, delimiter string) (*DelimitedWriter, error) {
	if delimiter == "" {
		return nil, common.NewPlanError(common.ResourceError, "create %q: delimiter must not be empty", path)
	}
	pending, err := renameio.TempFile("", path)
	if err != nil {
		return nil, common.NewPlanError(common.ResourceError, "create %q: %v", path, err)
	}

	w := &DelimitedWriter{path: path, delimiter: delimiter, pending: pending}
	var dst io.Writer = pending
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(pending)
		dst = w.gz
	}
	w.buf = bufio.NewWriter(dst)
	return w, nil
}

// WriteRow appends one record.
func (w *DelimitedWriter) WriteRow(row common.Row) error {
	for i, val := range row {
		if i > 0 {
			_, _ = w.buf.WriteString(w.delimiter)
		}
		if !val.IsNull() {
			_, _ = w.buf.WriteString(val.Text())
		}
	}
	// Buffered write errors are sticky; checking the record terminator
	// catches anything the field writes hit.
	if err := w.buf.WriteByte('\n'); err != nil {
		return common.NewPlanError(common.ResourceError, "write %q: %v", w.path, err)
	}
	w.rows++
	return nil
}

// Rows returns the number of records written so far.
func (w *DelimitedWriter) Rows() int64 {
	return w.rows
}

// Close flushes everything and atomically publishes the resource at the
// target path. On any failure the target is left as it was.
func (w *DelimitedWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.pending.Cleanup()
		return common.NewPlanError(common.ResourceError, "write %q: %v", w.path, err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			_ = w.pending.Cleanup()
			return common.NewPlanError(common.ResourceError, "write %q: %v", w.path, err)
		}
	}
	if err := w.pending.CloseAtomicallyReplace(); err != nil {
		_ = w.pending.Cleanup()
		return common.NewPlanError(common.ResourceError, "write %q: %v", w.path, err)
	}
	return nil
}

// Abort discards the pending output. Safe to defer alongside Close: it
// is a no-op once the replace succeeded.
func (w *DelimitedWriter) Abort() error {
	return w.pending.Cleanup()
}
