package planner

import (
	"fmt"
	"strings"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// JoinType is the target-algebra join tag.
type JoinType int8

const (
	Inner JoinType = iota
	LeftOuter
	RightOuter
	FullOuter
)

func (j JoinType) String() string {
	switch j {
	case Inner:
		return "Inner"
	case LeftOuter:
		return "LeftOuter"
	case RightOuter:
		return "RightOuter"
	case FullOuter:
		return "FullOuter"
	}
	return "???"
}

// JoinNode is an equi-join between exactly two children. Key lists are
// parallel across sides: LeftKeys[i] pairs with RightKeys[i]. The output
// schema is the left columns followed by the right columns; columns on a
// null-extended side become nullable.
type JoinNode struct {
	Left, Right PlanNode
	LeftKeys    []Expr
	RightKeys   []Expr
	Type        JoinType

	outputColumns []common.Column
}

func NewJoinNode(left, right PlanNode, leftKeys, rightKeys []Expr, joinType JoinType) *JoinNode {
	common.Assert(len(leftKeys) == len(rightKeys), "join key lists must pair up: %d vs %d", len(leftKeys), len(rightKeys))
	for i := range leftKeys {
		lt, rt := leftKeys[i].OutputColumn().Type, rightKeys[i].OutputColumn().Type
		common.Assert(lt == rt, "join key %d types must match: %s vs %s", i, lt, rt)
	}

	leftCols := left.OutputColumns()
	rightCols := right.OutputColumns()
	out := make([]common.Column, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		if joinType == RightOuter || joinType == FullOuter {
			c.Nullable = true
		}
		out = append(out, c)
	}
	for _, c := range rightCols {
		if joinType == LeftOuter || joinType == FullOuter {
			c.Nullable = true
		}
		out = append(out, c)
	}

	return &JoinNode{
		Left:          left,
		Right:         right,
		LeftKeys:      leftKeys,
		RightKeys:     rightKeys,
		Type:          joinType,
		outputColumns: out,
	}
}

func (n *JoinNode) OutputColumns() []common.Column {
	return n.outputColumns
}

func (n *JoinNode) Children() []PlanNode {
	return []PlanNode{n.Left, n.Right}
}

func (n *JoinNode) String() string {
	return fmt.Sprintf("Join: %s on %s = %s", n.Type, exprList(n.LeftKeys), exprList(n.RightKeys))
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
