package planner

import (
	"fmt"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// LimitNode passes through at most Limit child rows.
type LimitNode struct {
	Child PlanNode
	Limit int64
}

func NewLimitNode(child PlanNode, limit int64) *LimitNode {
	common.Assert(limit >= 0, "limit must be non-negative")
	return &LimitNode{
		Child: child,
		Limit: limit,
	}
}

func (n *LimitNode) OutputColumns() []common.Column {
	return n.Child.OutputColumns()
}

func (n *LimitNode) Children() []PlanNode {
	return []PlanNode{n.Child}
}

func (n *LimitNode) String() string {
	return fmt.Sprintf("Limit: %d", n.Limit)
}
