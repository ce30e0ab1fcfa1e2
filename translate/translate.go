// Package translate converts script logical plans (package pig) into
// executable typed plans (package planner). The conversion is a pure
// tree walk: children first, then the node itself, with nothing carried
// between nodes except the translated children.
//
// Column identity is positional on both sides. Every translated node is
// checked to produce exactly as many columns as its source operator
// declares, in the same order, so an ordinal that meant "third column"
// in the script still means the third column downstream. Everything the
// target algebra cannot represent (cross joins, operators outside the
// supported set) fails translation with an UnsupportedOperatorError
// rather than translating approximately.
package translate

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/pig"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// Translate converts one script plan tree into a typed plan tree. The
// source tree is never mutated and no I/O happens; resources named by
// load and store operators are opened only when the result is executed.
func Translate(node pig.Node) (planner.PlanNode, error) {
	if node == nil {
		return nil, common.NewPlanError(common.UnsupportedOperatorError, "cannot translate an empty plan")
	}
	out, err := translateNode(node)
	if err != nil {
		return nil, err
	}
	if want, got := len(node.Schema()), len(out.OutputColumns()); want != got {
		return nil, common.NewPlanError(common.SchemaMismatchError,
			"%s operator translated to %d columns, source declares %d", node.Kind(), got, want)
	}
	return out, nil
}

func translateNode(node pig.Node) (planner.PlanNode, error) {
	switch n := node.(type) {
	case *pig.LoadNode:
		return translateLoad(n)
	case *pig.ForeachNode:
		return translateForeach(n)
	case *pig.FilterNode:
		return translateFilter(n)
	case *pig.JoinNode:
		return translateJoin(n)
	case *pig.GroupNode:
		return translateGroup(n)
	case *pig.LimitNode:
		return translateLimit(n)
	case *pig.StoreNode:
		return translateStore(n)
	}
	return nil, common.NewPlanError(common.UnsupportedOperatorError,
		"no translation for %s operator (%T)", node.Kind(), node)
}

// translateLoad maps a load over delimited text to a scan. Every scanned
// column is nullable whatever the declared type: an empty field in the
// text is NULL, and the text can hold an empty field anywhere.
func translateLoad(n *pig.LoadNode) (planner.PlanNode, error) {
	if n.Delimiter == "" {
		return nil, common.NewPlanError(common.ResourceError, "load %q: delimiter must not be empty", n.Path)
	}
	columns := make([]common.Column, len(n.Columns))
	for i, col := range n.Columns {
		columns[i] = common.Column{Name: col.Name, Type: MapType(col.Type), Nullable: true}
	}
	return planner.NewScanNode(n.Path, n.Delimiter, columns), nil
}

func translateForeach(n *pig.ForeachNode) (planner.PlanNode, error) {
	child, err := Translate(n.Input)
	if err != nil {
		return nil, err
	}
	schema := child.OutputColumns()
	exprs := make([]planner.Expr, len(n.Ordinals))
	for i, ord := range n.Ordinals {
		ref, err := columnRef(ord, schema)
		if err != nil {
			return nil, err
		}
		exprs[i] = ref
	}
	if len(exprs) == 0 {
		return nil, common.NewPlanError(common.SchemaMismatchError, "foreach projects no columns")
	}
	return planner.NewProjectionNode(child, exprs), nil
}

func translateFilter(n *pig.FilterNode) (planner.PlanNode, error) {
	child, err := Translate(n.Input)
	if err != nil {
		return nil, err
	}
	predicate, err := translateExpr(n.Predicate, child.OutputColumns())
	if err != nil {
		return nil, err
	}
	if t := predicate.OutputColumn().Type; t != common.BoolType {
		return nil, common.NewPlanError(common.UnsupportedOperatorError,
			"filter predicate must be boolean, got %s", t)
	}
	return planner.NewFilterNode(child, predicate), nil
}

func translateJoin(n *pig.JoinNode) (planner.PlanNode, error) {
	joinType, err := mapJoinType(n.Type)
	if err != nil {
		return nil, err
	}
	left, err := Translate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Translate(n.Right)
	if err != nil {
		return nil, err
	}
	if len(n.LeftKeys) != len(n.RightKeys) {
		return nil, common.NewPlanError(common.SchemaMismatchError,
			"join key lists must pair up: %d left vs %d right", len(n.LeftKeys), len(n.RightKeys))
	}
	if len(n.LeftKeys) == 0 {
		return nil, common.NewPlanError(common.UnsupportedOperatorError, "join without keys is a cross join")
	}

	leftKeys, err := keyRefs(n.LeftKeys, left.OutputColumns())
	if err != nil {
		return nil, err
	}
	rightKeys, err := keyRefs(n.RightKeys, right.OutputColumns())
	if err != nil {
		return nil, err
	}
	for i := range leftKeys {
		lt := leftKeys[i].OutputColumn().Type
		rt := rightKeys[i].OutputColumn().Type
		if lt != rt {
			return nil, common.NewPlanError(common.UnsupportedOperatorError,
				"join key pair %d: cannot compare %s to %s", i, lt, rt)
		}
	}
	return planner.NewJoinNode(left, right, leftKeys, rightKeys, joinType), nil
}

func translateGroup(n *pig.GroupNode) (planner.PlanNode, error) {
	child, err := Translate(n.Input)
	if err != nil {
		return nil, err
	}
	schema := child.OutputColumns()

	groupBy := make([]planner.Expr, len(n.Keys))
	for i, ord := range n.Keys {
		ref, err := columnRef(ord, schema)
		if err != nil {
			return nil, err
		}
		groupBy[i] = ref
	}

	// The source operator already derived names and result types for the
	// aggregate output columns; reuse them rather than rederiving, so the
	// translated schema matches the source schema column for column.
	outSchema := n.Schema()
	aggregates := make([]planner.AggregateClause, len(n.Aggs))
	for i, spec := range n.Aggs {
		fn, err := mapAggFunc(spec.Func)
		if err != nil {
			return nil, err
		}
		ref, err := columnRef(spec.Column, schema)
		if err != nil {
			return nil, err
		}
		if fn == planner.AggSum {
			if t := ref.OutputColumn().Type; !t.Numeric() && t != common.BoolType {
				return nil, common.NewPlanError(common.UnsupportedOperatorError,
					"cannot sum a %s column", t)
			}
		}
		out := outSchema[len(n.Keys)+i]
		aggregates[i] = planner.AggregateClause{
			Type:       fn,
			Expr:       ref,
			Name:       out.Name,
			ResultType: MapType(out.Type),
		}
	}
	return planner.NewAggregateNode(child, groupBy, aggregates), nil
}

func translateLimit(n *pig.LimitNode) (planner.PlanNode, error) {
	child, err := Translate(n.Input)
	if err != nil {
		return nil, err
	}
	return planner.NewLimitNode(child, n.Count), nil
}

func translateStore(n *pig.StoreNode) (planner.PlanNode, error) {
	if n.Delimiter == "" {
		return nil, common.NewPlanError(common.ResourceError, "store %q: delimiter must not be empty", n.Path)
	}
	child, err := Translate(n.Input)
	if err != nil {
		return nil, err
	}
	return planner.NewSinkNode(child, n.Path, n.Delimiter), nil
}

// columnRef builds a positional reference into schema, turning an
// out-of-range ordinal into an error instead of a panic. Front ends
// validate ordinals at construction, but the translator cannot trust
// that a hand-built tree did.
func columnRef(ordinal int, schema []common.Column) (*planner.ColumnRef, error) {
	if ordinal < 0 || ordinal >= len(schema) {
		return nil, common.NewPlanError(common.SchemaMismatchError,
			"column ordinal %d out of range, child has %d columns", ordinal, len(schema))
	}
	return planner.NewColumnRef(ordinal, schema), nil
}

func keyRefs(ordinals []int, schema []common.Column) ([]planner.Expr, error) {
	refs := make([]planner.Expr, len(ordinals))
	for i, ord := range ordinals {
		ref, err := columnRef(ord, schema)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}
