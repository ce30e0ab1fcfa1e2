package planner

import (
	"fmt"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// FilterNode keeps the child rows for which the predicate is true.
type FilterNode struct {
	Child     PlanNode
	Predicate Expr
}

func NewFilterNode(child PlanNode, predicate Expr) *FilterNode {
	return &FilterNode{
		Child:     child,
		Predicate: predicate,
	}
}

func (n *FilterNode) OutputColumns() []common.Column {
	return n.Child.OutputColumns()
}

func (n *FilterNode) Children() []PlanNode {
	return []PlanNode{n.Child}
}

func (n *FilterNode) String() string {
	return fmt.Sprintf("Filter: %s", n.Predicate.String())
}
