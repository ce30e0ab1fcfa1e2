package planner

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// PlanNode represents the static structure of a translated query plan.
// Nodes are immutable trees: each node exclusively owns its children, and
// translation never revisits a finished node. The only mutable state a
// node may carry is a lazily-memoized artifact (a scan's cast projection,
// a sink's side-effect result) guarded for concurrent first access.
type PlanNode interface {
	// OutputColumns returns the ordered column references produced by this
	// node. The invariant for translated nodes: same count and ordinal
	// order as the source operator they came from.
	OutputColumns() []common.Column

	// Children returns the child plan nodes.
	Children() []PlanNode

	// String returns a one-line description of the plan node.
	String() string
}
