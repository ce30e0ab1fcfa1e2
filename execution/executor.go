// Package execution runs typed plans. Each plan node gets a physical
// executor following the iterator model: Init, then Next/Current until
// Next returns false, then Error to distinguish exhaustion from
// failure. Executors are single-threaded; re-running a plan means
// calling Init again, which resets every operator and reopens every
// resource.
package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// Executor is the interface that all physical execution nodes must
// implement.
type Executor interface {
	PlanNode() planner.PlanNode

	// Init initializes the executor with a specific execution context.
	// Calling Init again restarts the executor from the beginning.
	Init(ctx *ExecutorContext) error

	// Next advances to the next row. It returns false when the executor
	// is exhausted or has failed; Error tells the two apart.
	Next() bool

	// Current returns the row most recently produced by Next. The row is
	// never overwritten by later calls; callers may retain it.
	Current() common.Row

	// Error returns the first error the executor encountered, if any.
	Error() error

	// Close releases any resources held by the executor.
	Close() error
}

// Build constructs the executor tree for a plan. It fails on plan nodes
// that have no physical implementation rather than executing a subset.
func Build(plan planner.PlanNode) (Executor, error) {
	switch n := plan.(type) {
	case *planner.ScanNode:
		return NewDelimitedScanExecutor(n), nil
	case *planner.ProjectionNode:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return NewProjectionExecutor(n, child), nil
	case *planner.FilterNode:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return NewFilter(n, child), nil
	case *planner.JoinNode:
		left, err := Build(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Build(n.Right)
		if err != nil {
			return nil, err
		}
		return NewHashJoinExecutor(n, left, right), nil
	case *planner.AggregateNode:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return NewAggregateExecutor(n, child), nil
	case *planner.LimitNode:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return NewLimitExecutor(n, child), nil
	case *planner.SinkNode:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return NewSinkExecutor(n, child), nil
	}
	return nil, common.NewPlanError(common.UnsupportedOperatorError, "no executor for plan node %T", plan)
}
