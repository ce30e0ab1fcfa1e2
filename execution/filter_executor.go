package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// FilterExecutor filters rows from its child executor based on a
// predicate. A row passes only when the predicate is definitely true;
// false and NULL both drop it.
type FilterExecutor struct {
	plan  *planner.FilterNode
	child Executor
}

// NewFilter creates a new FilterExecutor executor.
func NewFilter(plan *planner.FilterNode, child Executor) *FilterExecutor {
	return &FilterExecutor{
		plan:  plan,
		child: child,
	}
}

func (e *FilterExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

// Init initializes the child.
func (e *FilterExecutor) Init(ctx *ExecutorContext) error {
	return e.child.Init(ctx)
}

func (e *FilterExecutor) Next() bool {
	for e.child.Next() {
		res := e.plan.Predicate.Eval(e.child.Current())

		if planner.ExprIsTrue(res) {
			return true
		}
	}
	return false
}

func (e *FilterExecutor) Current() common.Row {
	return e.child.Current()
}

func (e *FilterExecutor) Error() error {
	return e.child.Error()
}

func (e *FilterExecutor) Close() error {
	return e.child.Close()
}
