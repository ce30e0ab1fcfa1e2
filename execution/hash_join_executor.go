package execution

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// HashJoinExecutor implements the hash join algorithm for equi-joins,
// including the outer variants. It builds a table from the right child
// and probes it with the left child, so the probe loop can null-extend
// unmatched left rows in place for left-preserving joins; unmatched
// right rows surface in a tail pass after the probe side is exhausted.
//
// NULL join keys never match anything, on either side. Rows carrying
// them are dropped for inner joins and null-extended for the join types
// that preserve their side.
type HashJoinExecutor struct {
	plan        *planner.JoinNode
	left, right Executor

	// Runtime state
	table       *RowTable[*joinBucket]
	nullKeyRows []common.Row // right rows with a NULL key, kept only when the right side is preserved
	leftNulls   common.Row
	rightNulls  common.Row
	keyBuffer   []common.Value

	probeRow   common.Row // left row whose matches are being emitted
	matches    []common.Row
	matchIndex int

	tail      []common.Row
	tailIndex int
	probing   bool

	current common.Row
	err     error
}

// joinBucket collects the right rows sharing one key, and whether any
// probe row has matched them.
type joinBucket struct {
	rows    []common.Row
	matched bool
}

// NewHashJoinExecutor creates a new HashJoinExecutor.
func NewHashJoinExecutor(plan *planner.JoinNode, left Executor, right Executor) *HashJoinExecutor {
	return &HashJoinExecutor{
		plan:  plan,
		left:  left,
		right: right,
	}
}

func (e *HashJoinExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *HashJoinExecutor) Init(ctx *ExecutorContext) error {
	e.table = nil
	e.nullKeyRows = nil
	e.keyBuffer = make([]common.Value, len(e.plan.LeftKeys))
	e.leftNulls = nullsFor(e.plan.Left.OutputColumns())
	e.rightNulls = nullsFor(e.plan.Right.OutputColumns())
	e.probeRow = nil
	e.matches = nil
	e.matchIndex = 0
	e.tail = nil
	e.tailIndex = 0
	e.probing = true
	e.current = nil
	e.err = nil
	if err := e.left.Init(ctx); err != nil {
		return err
	}
	return e.right.Init(ctx)
}

// buildPhase consumes the entire right child and builds the join table.
func (e *HashJoinExecutor) buildPhase() error {
	e.table = NewRowTable[*joinBucket]()
	rightPreserved := e.plan.Type == planner.RightOuter || e.plan.Type == planner.FullOuter

Outer:
	for e.right.Next() {
		row := e.right.Current()
		for i, expr := range e.plan.RightKeys {
			val := expr.Eval(row)
			if val.IsNull() {
				if rightPreserved {
					e.nullKeyRows = append(e.nullKeyRows, row)
				}
				continue Outer
			}
			e.keyBuffer[i] = val
		}

		key := EncodeKey(e.keyBuffer)
		bucket, found := e.table.Get(key)
		if !found {
			bucket = &joinBucket{}
			e.table.Set(key, bucket)
		}
		bucket.rows = append(bucket.rows, row)
	}
	return e.right.Error()
}

func (e *HashJoinExecutor) Next() bool {
	if e.err != nil {
		return false
	}
	if e.table == nil {
		if err := e.buildPhase(); err != nil {
			e.err = err
			return false
		}
	}

	if e.probing {
		if e.probe() {
			return true
		}
		if e.err != nil {
			return false
		}
	}

	if e.tailIndex < len(e.tail) {
		e.current = e.tail[e.tailIndex]
		e.tailIndex++
		return true
	}
	return false
}

func (e *HashJoinExecutor) probe() bool {
	leftPreserved := e.plan.Type == planner.LeftOuter || e.plan.Type == planner.FullOuter

Outer:
	for {
		if e.matchIndex < len(e.matches) {
			e.current = joinRows(e.probeRow, e.matches[e.matchIndex])
			e.matchIndex++
			return true
		}

		if !e.left.Next() {
			if err := e.left.Error(); err != nil {
				e.err = err
				return false
			}
			e.probing = false
			e.buildTail()
			return false
		}
		leftRow := e.left.Current()

		for i, expr := range e.plan.LeftKeys {
			val := expr.Eval(leftRow)
			if val.IsNull() {
				if leftPreserved {
					e.current = joinRows(leftRow, e.rightNulls)
					return true
				}
				continue Outer
			}
			e.keyBuffer[i] = val
		}

		bucket, found := e.table.Get(EncodeKey(e.keyBuffer))
		if !found {
			if leftPreserved {
				e.current = joinRows(leftRow, e.rightNulls)
				return true
			}
			continue
		}
		bucket.matched = true
		e.probeRow = leftRow
		e.matches = bucket.rows
		e.matchIndex = 0
	}
}

// buildTail collects the right rows no probe row matched, null-extended
// on the left, in table order. Only joins preserving the right side
// have a tail.
func (e *HashJoinExecutor) buildTail() {
	if e.plan.Type != planner.RightOuter && e.plan.Type != planner.FullOuter {
		return
	}
	e.table.Iterate(func(_ string, bucket *joinBucket) bool {
		if bucket.matched {
			return true
		}
		for _, row := range bucket.rows {
			e.tail = append(e.tail, joinRows(e.leftNulls, row))
		}
		return true
	})
	for _, row := range e.nullKeyRows {
		e.tail = append(e.tail, joinRows(e.leftNulls, row))
	}
}

func (e *HashJoinExecutor) Current() common.Row {
	return e.current
}

func (e *HashJoinExecutor) Error() error {
	return e.err
}

func (e *HashJoinExecutor) Close() error {
	err1 := e.right.Close()
	err2 := e.left.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func joinRows(left, right common.Row) common.Row {
	out := make(common.Row, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}

func nullsFor(cols []common.Column) common.Row {
	row := make(common.Row, len(cols))
	for i, col := range cols {
		row[i] = common.NullValue(col.Type)
	}
	return row
}
