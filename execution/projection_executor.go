package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// ProjectionExecutor evaluates a list of expressions on the input rows
// and produces a new row containing the results of those expressions.
type ProjectionExecutor struct {
	plan  *planner.ProjectionNode
	child Executor

	// Runtime state
	current common.Row
	err     error
}

// NewProjectionExecutor creates a new ProjectionExecutor.
func NewProjectionExecutor(plan *planner.ProjectionNode, child Executor) *ProjectionExecutor {
	return &ProjectionExecutor{
		child: child,
		plan:  plan,
	}
}

func (e *ProjectionExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *ProjectionExecutor) Init(ctx *ExecutorContext) error {
	e.current = nil
	e.err = nil
	return e.child.Init(ctx)
}

func (e *ProjectionExecutor) Next() bool {
	if !e.child.Next() {
		e.err = e.child.Error()
		return false
	}

	childRow := e.child.Current()
	row := make(common.Row, len(e.plan.Expressions))
	for i, expr := range e.plan.Expressions {
		row[i] = expr.Eval(childRow)
	}
	e.current = row
	return true
}

func (e *ProjectionExecutor) Current() common.Row {
	return e.current
}

func (e *ProjectionExecutor) Error() error {
	return e.err
}

func (e *ProjectionExecutor) Close() error {
	return e.child.Close()
}
