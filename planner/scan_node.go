package planner

import (
	"fmt"
	"sync"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// ScanNode reads a delimited text resource and produces rows typed to its
// declared output columns. Translation builds it from a source Load; no
// I/O happens until the node is executed.
type ScanNode struct {
	Path      string
	Delimiter string

	outputColumns []common.Column

	// The cast projection is schema-proportional to build and reused for
	// every row, so it is constructed at most once per node and shared by
	// however many executors the engine instantiates for it.
	castOnce sync.Once
	cast     *CastProjection
}

func NewScanNode(path, delimiter string, outputColumns []common.Column) *ScanNode {
	common.Assert(len(outputColumns) > 0, "scan must declare at least one column")
	return &ScanNode{
		Path:          path,
		Delimiter:     delimiter,
		outputColumns: outputColumns,
	}
}

func (n *ScanNode) OutputColumns() []common.Column {
	return n.outputColumns
}

func (n *ScanNode) Children() []PlanNode {
	return nil
}

func (n *ScanNode) String() string {
	return fmt.Sprintf("Scan: %s (delimiter %q)", n.Path, n.Delimiter)
}

// Cast returns the node's memoized cast projection, building it on first
// access. Callers may force it eagerly as a construction barrier before
// row processing starts.
func (n *ScanNode) Cast() *CastProjection {
	n.castOnce.Do(func() {
		n.cast = NewCastProjection(n.outputColumns)
	})
	return n.cast
}
