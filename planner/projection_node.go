package planner

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// ProjectionNode computes one output column per expression from its
// child's rows.
type ProjectionNode struct {
	Child       PlanNode
	Expressions []Expr
}

func NewProjectionNode(child PlanNode, exprs []Expr) *ProjectionNode {
	common.Assert(len(exprs) > 0, "projection must produce at least one column")
	return &ProjectionNode{
		Child:       child,
		Expressions: exprs,
	}
}

func (n *ProjectionNode) OutputColumns() []common.Column {
	out := make([]common.Column, len(n.Expressions))
	for i, e := range n.Expressions {
		out[i] = e.OutputColumn()
	}
	return out
}

func (n *ProjectionNode) Children() []PlanNode {
	return []PlanNode{n.Child}
}

func (n *ProjectionNode) String() string {
	return "Projection"
}
