// Package storage reads and writes delimited text resources, the only
// storage format the engine speaks. A resource is a plain file of
// newline-terminated records, each split into fields by a delimiter
// string; a trailing ".gz" on the path means the whole file is
// gzip-compressed. Fields carry no type information here: the reader
// hands every field up as raw bytes (empty field meaning NULL) and the
// writer takes whatever textual form the values give it.
package storage

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// MaxRecordSize bounds a single record. Records are held in memory one
// at a time, so this is a guard against unterminated garbage input, not
// a format limit.
const MaxRecordSize = 4 * 1024 * 1024

// DelimitedReader streams rows out of one delimited text resource.
// Iteration follows the scanner pattern:
//
//	r, err := OpenDelimited(path, "\t")
//	for r.Next() {
//		use(r.Row())
//	}
//	err = r.Err()
//
// Field splitting preserves empty fields everywhere, including a
// trailing one: with delimiter "," the record "a,b," has three fields,
// the last NULL. The reader never checks field counts against a schema;
// that is the cast projection's job.
type DelimitedReader struct {
	path      string
	delimiter string

	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner

	row common.Row
	err error
}

// OpenDelimited opens the resource at path for reading. An unreadable
// path or an undecodable gzip header fails here, before any row flows.
func OpenDelimited(path, delimiter string) (*DelimitedReader, error) {
	if delimiter == "" {
		return nil, common.NewPlanError(common.ResourceError, "open %q: delimiter must not be empty", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, common.NewPlanError(common.ResourceError, "open %q: %v", path, err)
	}

	r := &DelimitedReader{path: path, delimiter: delimiter, file: file}
	var src io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, common.NewPlanError(common.ResourceError, "open %q: %v", path, err)
		}
		r.gz = gz
		src = gz
	}

	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 0, 64*1024), MaxRecordSize)
	return r, nil
}

// Next advances to the next record. It returns false at end of input or
// on error; Err tells the two apart.
func (r *DelimitedReader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = common.NewPlanError(common.ResourceError, "read %q: %v", r.path, err)
		}
		return false
	}

	fields := strings.Split(r.scanner.Text(), r.delimiter)
	row := make(common.Row, len(fields))
	for i, field := range fields {
		if field == "" {
			row[i] = common.NullValue(common.BytesType)
		} else {
			row[i] = common.NewBytesValue([]byte(field))
		}
	}
	r.row = row
	return true
}

// Row returns the record Next produced. The row is freshly allocated
// per record; callers may keep it.
func (r *DelimitedReader) Row() common.Row {
	return r.row
}

// Err returns the first error encountered while reading, nil after a
// clean end of input.
func (r *DelimitedReader) Err() error {
	return r.err
}

func (r *DelimitedReader) Close() error {
	var err error
	if r.gz != nil {
		err = r.gz.Close()
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}
