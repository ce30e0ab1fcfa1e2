package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// AggregateExecutor implements hash aggregation. It consumes its entire
// child on the first Next call, folding every row into per-group running
// states, then streams one result row per group in group-key order.
//
// An empty input produces no output rows, even when there are no
// grouping expressions.
type AggregateExecutor struct {
	plan  *planner.AggregateNode
	child Executor

	// Runtime state
	rows    []common.Row
	index   int
	built   bool
	current common.Row
	err     error
}

// groupState is the running state of one group: its key values and one
// accumulator per aggregate clause. An accumulator stays uninitialized
// until the first non-NULL input lands.
type groupState struct {
	keys []common.Value
	aggs []common.Value
}

// NewAggregateExecutor creates a new AggregateExecutor.
func NewAggregateExecutor(plan *planner.AggregateNode, child Executor) *AggregateExecutor {
	return &AggregateExecutor{
		plan:  plan,
		child: child,
	}
}

func (e *AggregateExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *AggregateExecutor) Init(ctx *ExecutorContext) error {
	e.rows = nil
	e.index = 0
	e.built = false
	e.current = nil
	e.err = nil
	return e.child.Init(ctx)
}

// buildGroups drains the child and materializes the result rows.
func (e *AggregateExecutor) buildGroups() error {
	table := NewRowTable[*groupState]()

	for e.child.Next() {
		row := e.child.Current()

		keys := make([]common.Value, len(e.plan.GroupByClause))
		for i, expr := range e.plan.GroupByClause {
			keys[i] = expr.Eval(row)
		}

		key := EncodeKey(keys)
		state, found := table.Get(key)
		if !found {
			state = &groupState{
				keys: keys,
				aggs: make([]common.Value, len(e.plan.AggClauses)),
			}
			table.Set(key, state)
		}

		for i, clause := range e.plan.AggClauses {
			updateAggregateState(&state.aggs[i], clause, clause.Expr.Eval(row))
		}
	}
	if err := e.child.Error(); err != nil {
		return err
	}

	table.Iterate(func(_ string, state *groupState) bool {
		out := make(common.Row, 0, len(state.keys)+len(state.aggs))
		out = append(out, state.keys...)
		for i, agg := range state.aggs {
			out = append(out, finalizeAggregate(e.plan.AggClauses[i], agg))
		}
		e.rows = append(e.rows, out)
		return true
	})
	return nil
}

func (e *AggregateExecutor) Next() bool {
	if e.err != nil {
		return false
	}
	if !e.built {
		if err := e.buildGroups(); err != nil {
			e.err = err
			return false
		}
		e.built = true
	}

	if e.index >= len(e.rows) {
		return false
	}
	e.current = e.rows[e.index]
	e.index++
	return true
}

func (e *AggregateExecutor) Current() common.Row {
	return e.current
}

func (e *AggregateExecutor) Error() error {
	return e.err
}

func (e *AggregateExecutor) Close() error {
	return e.child.Close()
}

// updateAggregateState folds one input value into a running accumulator.
// NULL inputs are invisible to every aggregate function.
func updateAggregateState(state *common.Value, clause planner.AggregateClause, val common.Value) {
	if val.IsNull() {
		return
	}

	switch clause.Type {
	case planner.AggCount:
		if state.IsNil() {
			*state = common.NewLongValue(1)
		} else {
			*state = common.NewLongValue(state.LongValue() + 1)
		}
	case planner.AggSum:
		*state = addToSum(*state, val, clause.ResultType)
	case planner.AggMin:
		if state.IsNil() || val.Compare(*state) < 0 {
			*state = val
		}
	case planner.AggMax:
		if state.IsNil() || val.Compare(*state) > 0 {
			*state = val
		}
	}
}

// finalizeAggregate turns an accumulator into the emitted value. A group
// whose inputs were all NULL counts zero and is NULL for the other
// functions.
func finalizeAggregate(clause planner.AggregateClause, state common.Value) common.Value {
	if !state.IsNil() {
		return state
	}
	if clause.Type == planner.AggCount {
		return common.NewLongValue(0)
	}
	return common.NullValue(clause.ResultType)
}

// addToSum widens the input to the declared result type and adds it to
// the running sum.
func addToSum(state common.Value, val common.Value, result common.Type) common.Value {
	switch result {
	case common.IntType:
		acc := int32(0)
		if !state.IsNil() {
			acc = state.IntValue()
		}
		return common.NewIntValue(acc + int32(integerOf(val)))
	case common.LongType:
		acc := int64(0)
		if !state.IsNil() {
			acc = state.LongValue()
		}
		return common.NewLongValue(acc + integerOf(val))
	case common.FloatType:
		acc := float32(0)
		if !state.IsNil() {
			acc = state.FloatValue()
		}
		return common.NewFloatValue(acc + float32(numericOf(val)))
	case common.DoubleType:
		acc := float64(0)
		if !state.IsNil() {
			acc = state.DoubleValue()
		}
		return common.NewDoubleValue(acc + numericOf(val))
	}
	common.Assert(false, "sum cannot accumulate into a %s column", result)
	return common.Value{}
}

func integerOf(val common.Value) int64 {
	switch val.Type() {
	case common.IntType:
		return int64(val.IntValue())
	case common.LongType:
		return val.LongValue()
	case common.BoolType:
		if val.BoolValue() {
			return 1
		}
		return 0
	}
	common.Assert(false, "no integer widening for a %s value", val.Type())
	return 0
}

func numericOf(val common.Value) float64 {
	switch val.Type() {
	case common.IntType:
		return float64(val.IntValue())
	case common.LongType:
		return float64(val.LongValue())
	case common.FloatType:
		return float64(val.FloatValue())
	case common.DoubleType:
		return val.DoubleValue()
	case common.BoolType:
		if val.BoolValue() {
			return 1
		}
		return 0
	}
	common.Assert(false, "no numeric widening for a %s value", val.Type())
	return 0
}
