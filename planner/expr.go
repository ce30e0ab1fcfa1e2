package planner

import (
	"fmt"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// Expr represents a node in a typed expression tree.
// Expressions are stateless and immutable; evaluation never fails, it
// produces NULL where SQL three-valued logic says so.
type Expr interface {
	// Eval evaluates the expression against the provided row.
	Eval(row common.Row) common.Value

	// OutputColumn describes the column this expression produces: its
	// display name, result type, and nullability.
	OutputColumn() common.Column

	// String returns a string representation of the expression.
	String() string
}

// ColumnRef references a child output column by ordinal. The name and
// type are copied out of the child schema at construction; resolution at
// evaluation time is purely positional.
type ColumnRef struct {
	ordinal int
	column  common.Column
}

func NewColumnRef(ordinal int, childSchema []common.Column) *ColumnRef {
	common.Assert(ordinal >= 0 && ordinal < len(childSchema), "column ordinal %d out of range [0,%d)", ordinal, len(childSchema))
	return &ColumnRef{ordinal: ordinal, column: childSchema[ordinal]}
}

// Ordinal returns the referenced position in the child row.
func (e *ColumnRef) Ordinal() int {
	return e.ordinal
}

func (e *ColumnRef) Eval(row common.Row) common.Value {
	return row[e.ordinal]
}

func (e *ColumnRef) OutputColumn() common.Column {
	return e.column
}

func (e *ColumnRef) String() string {
	return fmt.Sprintf("%s#%d", e.column.Name, e.ordinal)
}

// Constant is a literal value.
type Constant struct {
	val common.Value
}

func NewConstant(val common.Value) *Constant {
	return &Constant{val: val}
}

func (e *Constant) Eval(row common.Row) common.Value {
	return e.val
}

func (e *Constant) OutputColumn() common.Column {
	return common.Column{Name: e.String(), Type: e.val.Type(), Nullable: e.val.IsNull()}
}

func (e *Constant) String() string {
	if e.val.IsNull() {
		return "null"
	}
	if e.val.Type() == common.StringType {
		return fmt.Sprintf("'%s'", e.val.StringValue())
	}
	return e.val.Text()
}

// ExprIsTrue reports whether a predicate result is definitely true.
// NULL counts as not-true, per three-valued logic.
func ExprIsTrue(v common.Value) bool {
	return v.Type() == common.BoolType && !v.IsNull() && v.BoolValue()
}

// ExprIsFalse reports whether a predicate result is definitely false.
func ExprIsFalse(v common.Value) bool {
	return v.Type() == common.BoolType && !v.IsNull() && !v.BoolValue()
}

type ComparisonType int

const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
)

func (c ComparisonType) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterThanOrEqual:
		return ">="
	case LessThanOrEqual:
		return "<="
	}
	return "???"
}

// ComparisonExpression compares two same-typed operands. Any NULL operand
// yields NULL.
type ComparisonExpression struct {
	left     Expr
	right    Expr
	compType ComparisonType
}

func NewComparisonExpression(left Expr, right Expr, compType ComparisonType) *ComparisonExpression {
	lt, rt := left.OutputColumn().Type, right.OutputColumn().Type
	common.Assert(lt == rt, "comparison operands must share a type: %s vs %s", lt, rt)
	return &ComparisonExpression{
		left:     left,
		right:    right,
		compType: compType,
	}
}

func (e *ComparisonExpression) Eval(row common.Row) common.Value {
	val1 := e.left.Eval(row)
	val2 := e.right.Eval(row)

	if val1.IsNull() || val2.IsNull() {
		return common.NullValue(common.BoolType)
	}

	cmp := val1.Compare(val2)
	var result bool

	switch e.compType {
	case Equal:
		result = cmp == 0
	case NotEqual:
		result = cmp != 0
	case GreaterThan:
		result = cmp > 0
	case LessThan:
		result = cmp < 0
	case GreaterThanOrEqual:
		result = cmp >= 0
	case LessThanOrEqual:
		result = cmp <= 0
	}
	return common.NewBoolValue(result)
}

func (e *ComparisonExpression) OutputColumn() common.Column {
	return common.Column{Name: e.String(), Type: common.BoolType, Nullable: true}
}

func (e *ComparisonExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left.String(), e.compType.String(), e.right.String())
}

type BinaryLogicType int

const (
	And BinaryLogicType = iota
	Or
)

func (l BinaryLogicType) String() string {
	switch l {
	case And:
		return "AND"
	case Or:
		return "OR"
	}
	return "???"
}

// BinaryLogicExpression combines two boolean operands under three-valued
// logic: NULL AND false is false, NULL OR true is true, everything else
// involving NULL stays NULL.
type BinaryLogicExpression struct {
	left      Expr
	right     Expr
	logicType BinaryLogicType
}

func NewBinaryLogicExpression(left Expr, right Expr, logicType BinaryLogicType) *BinaryLogicExpression {
	return &BinaryLogicExpression{
		left:      left,
		right:     right,
		logicType: logicType,
	}
}

func (e *BinaryLogicExpression) Eval(row common.Row) common.Value {
	val1 := e.left.Eval(row)
	val2 := e.right.Eval(row)

	switch e.logicType {
	case And:
		if ExprIsTrue(val1) && ExprIsTrue(val2) {
			return common.NewBoolValue(true)
		} else if ExprIsFalse(val1) || ExprIsFalse(val2) {
			return common.NewBoolValue(false)
		}
		return common.NullValue(common.BoolType)
	case Or:
		if ExprIsTrue(val1) || ExprIsTrue(val2) {
			return common.NewBoolValue(true)
		} else if ExprIsFalse(val1) && ExprIsFalse(val2) {
			return common.NewBoolValue(false)
		}
		return common.NullValue(common.BoolType)
	default:
		panic("unknown logic type")
	}
}

func (e *BinaryLogicExpression) OutputColumn() common.Column {
	return common.Column{Name: e.String(), Type: common.BoolType, Nullable: true}
}

func (e *BinaryLogicExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left.String(), e.logicType.String(), e.right.String())
}

type NegationExpression struct {
	child Expr
}

func NewNegationExpression(child Expr) *NegationExpression {
	return &NegationExpression{
		child: child,
	}
}

func (e *NegationExpression) Eval(row common.Row) common.Value {
	val := e.child.Eval(row)
	if val.IsNull() {
		return common.NullValue(common.BoolType)
	}
	return common.NewBoolValue(!ExprIsTrue(val))
}

func (e *NegationExpression) OutputColumn() common.Column {
	return common.Column{Name: e.String(), Type: common.BoolType, Nullable: true}
}

func (e *NegationExpression) String() string {
	return fmt.Sprintf("!(%s)", e.child.String())
}

type NullCheckType int

const (
	IsNull NullCheckType = iota
	IsNotNull
)

func (n NullCheckType) String() string {
	switch n {
	case IsNull:
		return "IS NULL"
	case IsNotNull:
		return "IS NOT NULL"
	}
	return "???"
}

// NullCheckExpression tests a value for NULL. Unlike comparisons it never
// produces NULL itself.
type NullCheckExpression struct {
	child     Expr
	checkType NullCheckType
}

func NewNullCheckExpression(child Expr, checkType NullCheckType) *NullCheckExpression {
	return &NullCheckExpression{
		child:     child,
		checkType: checkType,
	}
}

func (e *NullCheckExpression) Eval(row common.Row) common.Value {
	isNull := e.child.Eval(row).IsNull()

	switch e.checkType {
	case IsNull:
		return common.NewBoolValue(isNull)
	default:
		return common.NewBoolValue(!isNull)
	}
}

func (e *NullCheckExpression) OutputColumn() common.Column {
	return common.Column{Name: e.String(), Type: common.BoolType, Nullable: false}
}

func (e *NullCheckExpression) String() string {
	return fmt.Sprintf("(%s %s)", e.child.String(), e.checkType.String())
}
