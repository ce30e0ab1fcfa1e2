package planner

import (
	"fmt"
	"sync"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// SinkNode writes its child's rows to a delimited text resource and
// passes the written rows through as its own output, so a sink composes
// as a plan node rather than only terminating a plan.
//
// The write is a one-time side effect. Distributed engines may force the
// sink's result from many workers; the node memoizes the first
// materialization and serves every later request from it, so the
// resource is written exactly once per node no matter how many executors
// are built on top of it.
type SinkNode struct {
	Child     PlanNode
	Path      string
	Delimiter string

	once sync.Once
	rows []common.Row
	err  error
}

func NewSinkNode(child PlanNode, path, delimiter string) *SinkNode {
	return &SinkNode{
		Child:     child,
		Path:      path,
		Delimiter: delimiter,
	}
}

func (n *SinkNode) OutputColumns() []common.Column {
	return n.Child.OutputColumns()
}

func (n *SinkNode) Children() []PlanNode {
	return []PlanNode{n.Child}
}

func (n *SinkNode) String() string {
	return fmt.Sprintf("Sink: %s (delimiter %q)", n.Path, n.Delimiter)
}

// Materialize runs fn at most once for the lifetime of the node and
// returns its memoized result thereafter, including across goroutines
// forcing it concurrently. fn performs the child execution and the write.
func (n *SinkNode) Materialize(fn func() ([]common.Row, error)) ([]common.Row, error) {
	n.once.Do(func() {
		n.rows, n.err = fn()
	})
	return n.rows, n.err
}
