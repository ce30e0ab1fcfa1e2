package planner

import (
	"fmt"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

type AggregatorType int

const (
	AggCount AggregatorType = iota
	AggSum
	AggMin
	AggMax
)

func (a AggregatorType) String() string {
	switch a {
	case AggCount:
		return "count"
	case AggSum:
		return "sum"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	}
	return "???"
}

// AggregateClause applies one aggregate function over one input
// expression. ResultType is declared at construction because the result
// of an empty group is a typed NULL, not the input type's zero.
type AggregateClause struct {
	Type       AggregatorType
	Expr       Expr
	Name       string
	ResultType common.Type
}

// AggregateNode groups child rows by the grouping expressions and emits
// one row per group: the group keys followed by the aggregate results, in
// declaration order.
type AggregateNode struct {
	Child         PlanNode
	GroupByClause []Expr
	AggClauses    []AggregateClause

	outputColumns []common.Column
}

func NewAggregateNode(child PlanNode, groupBy []Expr, aggregates []AggregateClause) *AggregateNode {
	out := make([]common.Column, 0, len(groupBy)+len(aggregates))
	for _, expr := range groupBy {
		out = append(out, expr.OutputColumn())
	}
	for _, agg := range aggregates {
		// Aggregates over no rows produce NULL, so the result column is
		// always nullable.
		out = append(out, common.Column{Name: agg.Name, Type: agg.ResultType, Nullable: true})
	}

	return &AggregateNode{
		Child:         child,
		GroupByClause: groupBy,
		AggClauses:    aggregates,
		outputColumns: out,
	}
}

func (n *AggregateNode) OutputColumns() []common.Column {
	return n.outputColumns
}

func (n *AggregateNode) Children() []PlanNode {
	return []PlanNode{n.Child}
}

func (n *AggregateNode) String() string {
	return fmt.Sprintf("Aggregate: GroupBy%s", exprList(n.GroupByClause))
}
