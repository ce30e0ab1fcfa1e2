// Package pig defines the contract between an upstream dataflow-script
// front end and the plan translator. The front end (parser, script shell)
// produces a tree of Nodes; the translator consumes it as an opaque,
// read-only input. Nothing in this package performs I/O or evaluates
// anything: a Node only answers what operator it is, what its children
// are, what columns it produces, and what its operator-specific
// parameters were.
//
// The closed operator set here covers only what the translator handles.
// The rest of the script language stays on the front-end side.
package pig

import (
	"fmt"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

// Type is the column type tag declared on the script side. Scripts are
// largely untyped at the storage boundary: a load without a schema
// declares every column Unknown, and Unknown stays undecoded bytes until
// a cast gives it a concrete type.
type Type int8

const (
	Unknown Type = iota // untyped; undecoded bytes until cast
	Int
	Long
	Float
	Double
	CharArray // text
	ByteArray // explicit raw bytes
	Boolean
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case CharArray:
		return "chararray"
	case ByteArray:
		return "bytearray"
	case Boolean:
		return "boolean"
	}
	return "unknown"
}

// Column is one named output column of a script operator.
type Column struct {
	Name string
	Type Type
}

// OpKind identifies a script operator.
type OpKind int8

const (
	OpLoad OpKind = iota
	OpForeach
	OpFilter
	OpJoin
	OpGroup
	OpLimit
	OpStore
)

func (k OpKind) String() string {
	switch k {
	case OpLoad:
		return "Load"
	case OpForeach:
		return "Foreach"
	case OpFilter:
		return "Filter"
	case OpJoin:
		return "Join"
	case OpGroup:
		return "Group"
	case OpLimit:
		return "Limit"
	case OpStore:
		return "Store"
	}
	return "unknown"
}

// JoinType is the script-side join tag. Cross is carried for completeness
// but has no target-algebra equivalent and is rejected by the translator.
type JoinType int8

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
)

func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "inner"
	case LeftOuterJoin:
		return "left-outer"
	case RightOuterJoin:
		return "right-outer"
	case FullOuterJoin:
		return "full-outer"
	case CrossJoin:
		return "cross"
	}
	return "unknown"
}

// Node is a single operator in a script logical plan. Implementations are
// immutable once constructed and owned by the front end; the translator
// never mutates them.
type Node interface {
	Kind() OpKind
	Children() []Node
	// Schema returns the operator's ordered output columns. Column
	// identity is positional: the translator resolves every reference by
	// ordinal, never by name.
	Schema() []Column
}

// LoadNode reads a delimited text resource. A load declares its output
// schema up front; columns without a declared type are Unknown.
type LoadNode struct {
	Path      string
	Delimiter string
	Columns   []Column
}

func NewLoadNode(path, delimiter string, columns []Column) *LoadNode {
	common.Assert(len(columns) > 0, "load must declare at least one column")
	return &LoadNode{Path: path, Delimiter: delimiter, Columns: columns}
}

func (n *LoadNode) Kind() OpKind { return OpLoad }
func (n *LoadNode) Children() []Node { return nil }
func (n *LoadNode) Schema() []Column { return n.Columns }

// ForeachNode projects a subset of its input's columns, identified by
// ordinal into the input schema. The front end has already resolved any
// names; only positions arrive here.
type ForeachNode struct {
	Input    Node
	Ordinals []int
}

func NewForeachNode(input Node, ordinals []int) *ForeachNode {
	in := input.Schema()
	for _, ord := range ordinals {
		common.Assert(ord >= 0 && ord < len(in), "foreach ordinal %d out of range [0,%d)", ord, len(in))
	}
	return &ForeachNode{Input: input, Ordinals: ordinals}
}

func (n *ForeachNode) Kind() OpKind { return OpForeach }
func (n *ForeachNode) Children() []Node { return []Node{n.Input} }

func (n *ForeachNode) Schema() []Column {
	in := n.Input.Schema()
	out := make([]Column, len(n.Ordinals))
	for i, ord := range n.Ordinals {
		out[i] = in[ord]
	}
	return out
}

// FilterNode keeps the input rows for which the predicate holds.
type FilterNode struct {
	Input     Node
	Predicate Expr
}

func NewFilterNode(input Node, predicate Expr) *FilterNode {
	return &FilterNode{Input: input, Predicate: predicate}
}

func (n *FilterNode) Kind() OpKind { return OpFilter }
func (n *FilterNode) Children() []Node { return []Node{n.Input} }
func (n *FilterNode) Schema() []Column { return n.Input.Schema() }

// JoinNode joins two inputs on per-side ordinal key lists. The key lists
// are parallel: LeftKeys[i] pairs with RightKeys[i].
type JoinNode struct {
	Left, Right Node
	LeftKeys    []int
	RightKeys   []int
	Type        JoinType
}

func NewJoinNode(left, right Node, leftKeys, rightKeys []int, joinType JoinType) *JoinNode {
	common.Assert(len(leftKeys) == len(rightKeys), "join key lists must pair up: %d vs %d", len(leftKeys), len(rightKeys))
	for _, ord := range leftKeys {
		common.Assert(ord >= 0 && ord < len(left.Schema()), "left join key %d out of range", ord)
	}
	for _, ord := range rightKeys {
		common.Assert(ord >= 0 && ord < len(right.Schema()), "right join key %d out of range", ord)
	}
	return &JoinNode{Left: left, Right: right, LeftKeys: leftKeys, RightKeys: rightKeys, Type: joinType}
}

func (n *JoinNode) Kind() OpKind { return OpJoin }
func (n *JoinNode) Children() []Node { return []Node{n.Left, n.Right} }

func (n *JoinNode) Schema() []Column {
	left := n.Left.Schema()
	out := make([]Column, 0, len(left)+len(n.Right.Schema()))
	out = append(out, left...)
	return append(out, n.Right.Schema()...)
}

// AggFunc is an aggregate function tag.
type AggFunc int8

const (
	AggCount AggFunc = iota
	AggSum
	AggMin
	AggMax
)

func (f AggFunc) String() string {
	switch f {
	case AggCount:
		return "count"
	case AggSum:
		return "sum"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	}
	return "unknown"
}

// AggSpec applies one aggregate function to one input column (by ordinal).
type AggSpec struct {
	Func   AggFunc
	Column int
}

// GroupNode groups the input on ordinal keys and computes aggregates per
// group. Output columns are the group keys followed by one column per
// aggregate, in declaration order.
type GroupNode struct {
	Input Node
	Keys  []int
	Aggs  []AggSpec
}

func NewGroupNode(input Node, keys []int, aggs []AggSpec) *GroupNode {
	in := input.Schema()
	for _, ord := range keys {
		common.Assert(ord >= 0 && ord < len(in), "group key %d out of range", ord)
	}
	for _, agg := range aggs {
		common.Assert(agg.Column >= 0 && agg.Column < len(in), "aggregate column %d out of range", agg.Column)
	}
	return &GroupNode{Input: input, Keys: keys, Aggs: aggs}
}

func (n *GroupNode) Kind() OpKind { return OpGroup }
func (n *GroupNode) Children() []Node { return []Node{n.Input} }

func (n *GroupNode) Schema() []Column {
	in := n.Input.Schema()
	out := make([]Column, 0, len(n.Keys)+len(n.Aggs))
	for _, ord := range n.Keys {
		out = append(out, in[ord])
	}
	for _, agg := range n.Aggs {
		src := in[agg.Column]
		out = append(out, Column{
			Name: fmt.Sprintf("%s(%s)", agg.Func, src.Name),
			Type: aggResultType(agg.Func, src.Type),
		})
	}
	return out
}

// aggResultType follows the script language's aggregate typing rules:
// counts are long; sums widen ints to long and everything else to double;
// min/max keep the input type.
func aggResultType(f AggFunc, in Type) Type {
	switch f {
	case AggCount:
		return Long
	case AggSum:
		switch in {
		case Int, Long, Boolean:
			return Long
		default:
			return Double
		}
	default:
		return in
	}
}

// LimitNode passes through at most Count input rows.
type LimitNode struct {
	Input Node
	Count int64
}

func NewLimitNode(input Node, count int64) *LimitNode {
	common.Assert(count >= 0, "limit count must be non-negative")
	return &LimitNode{Input: input, Count: count}
}

func (n *LimitNode) Kind() OpKind { return OpLimit }
func (n *LimitNode) Children() []Node { return []Node{n.Input} }
func (n *LimitNode) Schema() []Column { return n.Input.Schema() }

// StoreNode writes its input to a delimited text resource.
type StoreNode struct {
	Input     Node
	Path      string
	Delimiter string
}

func NewStoreNode(input Node, path, delimiter string) *StoreNode {
	return &StoreNode{Input: input, Path: path, Delimiter: delimiter}
}

func (n *StoreNode) Kind() OpKind { return OpStore }
func (n *StoreNode) Children() []Node { return []Node{n.Input} }
func (n *StoreNode) Schema() []Column { return n.Input.Schema() }
