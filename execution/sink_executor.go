package execution

import (
	"github.com/go-kit/log/level"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/storage"
)

// SinkExecutor forces a SinkNode. The first executor to reach the node
// runs the child pipeline and writes the delimited resource; the node
// memoizes the written rows, and every executor built on it, this one
// included, streams the memoized rows as its own output. Re-running a
// plan therefore never writes the same resource twice.
type SinkExecutor struct {
	plan  *planner.SinkNode
	child Executor

	// Runtime state
	ctx     *ExecutorContext
	rows    []common.Row
	index   int
	fetched bool
	current common.Row
	err     error
}

// NewSinkExecutor creates a new SinkExecutor.
func NewSinkExecutor(plan *planner.SinkNode, child Executor) *SinkExecutor {
	return &SinkExecutor{
		plan:  plan,
		child: child,
	}
}

func (e *SinkExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *SinkExecutor) Init(ctx *ExecutorContext) error {
	e.ctx = ctx
	e.rows = nil
	e.index = 0
	e.fetched = false
	e.current = nil
	e.err = nil
	return e.child.Init(ctx)
}

// run executes the child pipeline and writes every row it produces.
// The resource only becomes visible once the write completes.
func (e *SinkExecutor) run() ([]common.Row, error) {
	w, err := storage.CreateDelimited(e.plan.Path, e.plan.Delimiter)
	if err != nil {
		return nil, err
	}
	defer w.Abort()

	var rows []common.Row
	for e.child.Next() {
		row := e.child.Current()
		if err := w.WriteRow(row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := e.child.Error(); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	_ = level.Debug(e.ctx.Logger()).Log(
		"msg", "materialized sink",
		"resource", e.plan.Path,
		"rows", w.Rows(),
	)
	return rows, nil
}

func (e *SinkExecutor) Next() bool {
	if e.err != nil {
		return false
	}
	if !e.fetched {
		e.rows, e.err = e.plan.Materialize(e.run)
		e.fetched = true
		if e.err != nil {
			return false
		}
	}

	if e.index >= len(e.rows) {
		return false
	}
	e.current = e.rows[e.index]
	e.index++
	return true
}

func (e *SinkExecutor) Current() common.Row {
	return e.current
}

func (e *SinkExecutor) Error() error {
	return e.err
}

func (e *SinkExecutor) Close() error {
	return e.child.Close()
}
