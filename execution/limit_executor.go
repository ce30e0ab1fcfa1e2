package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// LimitExecutor limits the number of rows returned by the child
// executor.
type LimitExecutor struct {
	plan  *planner.LimitNode
	child Executor

	numEmitted int64
}

func NewLimitExecutor(plan *planner.LimitNode, child Executor) *LimitExecutor {
	return &LimitExecutor{
		plan:  plan,
		child: child,
	}
}

func (e *LimitExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *LimitExecutor) Init(ctx *ExecutorContext) error {
	e.numEmitted = 0
	return e.child.Init(ctx)
}

func (e *LimitExecutor) Next() bool {
	if e.numEmitted >= e.plan.Limit {
		return false
	}

	if e.child.Next() {
		e.numEmitted++
		return true
	}
	return false
}

func (e *LimitExecutor) Current() common.Row {
	return e.child.Current()
}

func (e *LimitExecutor) Error() error {
	return e.child.Error()
}

func (e *LimitExecutor) Close() error {
	return e.child.Close()
}
