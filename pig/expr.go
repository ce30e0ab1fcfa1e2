package pig

// Expr is a boolean-valued script expression carried on a FilterNode.
// Like Node, expressions are opaque front-end data: the translator reads
// them, the front end never evaluates them.
type Expr interface {
	isExpr()
}

// CompareOp is a comparison operator tag.
type CompareOp int8

const (
	Eq CompareOp = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	}
	return "unknown"
}

// LogicOp is a binary boolean connective tag.
type LogicOp int8

const (
	And LogicOp = iota
	Or
)

func (op LogicOp) String() string {
	if op == And {
		return "and"
	}
	return "or"
}

// ColumnExpr references a column of the enclosing operator's input by
// ordinal. Names never reach the translator.
type ColumnExpr struct {
	Ordinal int
}

// Literal is a constant in its script-source lexical form. The script
// side does not decode literals; the translator coerces Value against
// whatever the literal is compared to.
type Literal struct {
	Type  Type
	Value string
}

// CompareExpr compares two operands.
type CompareExpr struct {
	Op    CompareOp
	Left  Expr
	Right Expr
}

// LogicExpr combines two boolean operands.
type LogicExpr struct {
	Op    LogicOp
	Left  Expr
	Right Expr
}

// NotExpr negates a boolean operand.
type NotExpr struct {
	Expr Expr
}

// IsNullExpr tests an operand for NULL; Negated flips it to IS NOT NULL.
type IsNullExpr struct {
	Expr    Expr
	Negated bool
}

func (ColumnExpr) isExpr()  {}
func (Literal) isExpr()     {}
func (CompareExpr) isExpr() {}
func (LogicExpr) isExpr()   {}
func (NotExpr) isExpr()     {}
func (IsNullExpr) isExpr()  {}
