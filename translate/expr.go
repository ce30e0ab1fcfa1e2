package translate

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/pig"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// translateExpr converts a script predicate against the typed schema of
// its operator's input. Script literals arrive in lexical form and are
// decoded here; compared to a column, a literal adopts the column's
// type, so `weight > '10'` is a double comparison against a double
// column and a bytewise one against an uncast bytes column.
func translateExpr(e pig.Expr, schema []common.Column) (planner.Expr, error) {
	switch x := e.(type) {
	case pig.ColumnExpr:
		return columnRef(x.Ordinal, schema)
	case pig.Literal:
		return decodeLiteral(x, MapType(x.Type), nil)
	case pig.CompareExpr:
		return translateCompare(x, schema)
	case pig.LogicExpr:
		left, err := booleanOperand(x.Left, schema, x.Op.String())
		if err != nil {
			return nil, err
		}
		right, err := booleanOperand(x.Right, schema, x.Op.String())
		if err != nil {
			return nil, err
		}
		op := planner.And
		if x.Op == pig.Or {
			op = planner.Or
		}
		return planner.NewBinaryLogicExpression(left, right, op), nil
	case pig.NotExpr:
		inner, err := booleanOperand(x.Expr, schema, "not")
		if err != nil {
			return nil, err
		}
		return planner.NewNegationExpression(inner), nil
	case pig.IsNullExpr:
		inner, err := translateExpr(x.Expr, schema)
		if err != nil {
			return nil, err
		}
		check := planner.IsNull
		if x.Negated {
			check = planner.IsNotNull
		}
		return planner.NewNullCheckExpression(inner, check), nil
	case nil:
		return nil, common.NewPlanError(common.UnsupportedOperatorError, "filter carries no predicate")
	}
	return nil, common.NewPlanError(common.UnsupportedOperatorError, "no translation for expression (%T)", e)
}

func booleanOperand(e pig.Expr, schema []common.Column, ctx string) (planner.Expr, error) {
	out, err := translateExpr(e, schema)
	if err != nil {
		return nil, err
	}
	if t := out.OutputColumn().Type; t != common.BoolType {
		return nil, common.NewPlanError(common.UnsupportedOperatorError,
			"%s operand must be boolean, got %s", ctx, t)
	}
	return out, nil
}

// translateCompare reconciles the operand types of a comparison. Two
// columns must already share a type; this layer never casts stored data
// to make a comparison work.
func translateCompare(e pig.CompareExpr, schema []common.Column) (planner.Expr, error) {
	op, err := mapCompareOp(e.Op)
	if err != nil {
		return nil, err
	}
	leftCol, leftIsCol := e.Left.(pig.ColumnExpr)
	rightCol, rightIsCol := e.Right.(pig.ColumnExpr)
	leftLit, leftIsLit := e.Left.(pig.Literal)
	rightLit, rightIsLit := e.Right.(pig.Literal)

	switch {
	case leftIsCol && rightIsCol:
		l, err := columnRef(leftCol.Ordinal, schema)
		if err != nil {
			return nil, err
		}
		r, err := columnRef(rightCol.Ordinal, schema)
		if err != nil {
			return nil, err
		}
		lc, rc := l.OutputColumn(), r.OutputColumn()
		if lc.Type != rc.Type {
			return nil, common.NewPlanError(common.UnsupportedOperatorError,
				"cannot compare %s column %q to %s column %q", lc.Type, lc.Name, rc.Type, rc.Name)
		}
		return planner.NewComparisonExpression(l, r, op), nil

	case leftIsCol && rightIsLit:
		l, err := columnRef(leftCol.Ordinal, schema)
		if err != nil {
			return nil, err
		}
		r, err := decodeLiteral(rightLit, l.OutputColumn().Type, l)
		if err != nil {
			return nil, err
		}
		return planner.NewComparisonExpression(l, r, op), nil

	case leftIsLit && rightIsCol:
		r, err := columnRef(rightCol.Ordinal, schema)
		if err != nil {
			return nil, err
		}
		l, err := decodeLiteral(leftLit, r.OutputColumn().Type, r)
		if err != nil {
			return nil, err
		}
		return planner.NewComparisonExpression(l, r, op), nil

	case leftIsLit && rightIsLit:
		lt, rt := MapType(leftLit.Type), MapType(rightLit.Type)
		if lt != rt {
			return nil, common.NewPlanError(common.UnsupportedOperatorError,
				"cannot compare %s literal to %s literal", lt, rt)
		}
		l, err := decodeLiteral(leftLit, lt, nil)
		if err != nil {
			return nil, err
		}
		r, err := decodeLiteral(rightLit, rt, nil)
		if err != nil {
			return nil, err
		}
		return planner.NewComparisonExpression(l, r, op), nil
	}
	return nil, common.NewPlanError(common.UnsupportedOperatorError,
		"comparison operands must be column references or literals")
}

// decodeLiteral coerces a literal's lexical form to the target type.
// anchor, when present, is the column the literal is compared against
// and only serves error reporting.
func decodeLiteral(lit pig.Literal, target common.Type, anchor *planner.ColumnRef) (planner.Expr, error) {
	val, err := planner.DecodeText(lit.Value, target)
	if err != nil {
		castErr := &common.CastError{Raw: []byte(lit.Value), Target: target, Err: err}
		if anchor != nil {
			castErr.Column = anchor.OutputColumn().Name
			castErr.Ordinal = anchor.Ordinal()
		}
		return nil, castErr
	}
	return planner.NewConstant(val), nil
}
