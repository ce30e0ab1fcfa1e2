package execution

import (
	"github.com/go-kit/log/level"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/storage"
)

// DelimitedScanExecutor reads a delimited text resource and casts each
// record to the scan's declared schema. Records that fail the cast are
// handled per the context's CastPolicy.
type DelimitedScanExecutor struct {
	plan *planner.ScanNode

	// Runtime state
	reader  *storage.DelimitedReader
	current common.Row
	skipped int64
	ctx     *ExecutorContext
	err     error
}

// NewDelimitedScanExecutor creates a new DelimitedScanExecutor.
func NewDelimitedScanExecutor(plan *planner.ScanNode) *DelimitedScanExecutor {
	return &DelimitedScanExecutor{
		plan: plan,
	}
}

func (e *DelimitedScanExecutor) PlanNode() planner.PlanNode {
	return e.plan
}

func (e *DelimitedScanExecutor) Init(ctx *ExecutorContext) error {
	if e.reader != nil {
		_ = e.reader.Close()
		e.reader = nil
	}
	e.ctx = ctx
	e.err = nil
	e.skipped = 0

	// Force the shared cast projection before any row flows, so a plan
	// executed from many operators builds it exactly once, up front.
	e.plan.Cast()

	reader, err := storage.OpenDelimited(e.plan.Path, e.plan.Delimiter)
	if err != nil {
		return err
	}
	e.reader = reader
	return nil
}

func (e *DelimitedScanExecutor) Next() bool {
	if e.err != nil || e.reader == nil {
		return false
	}
	cast := e.plan.Cast()
	width := len(e.plan.OutputColumns())

	for e.reader.Next() {
		raw := e.reader.Row()
		if len(raw) < width && e.ctx.PadShortRows() {
			padded := make(common.Row, width)
			copy(padded, raw)
			for i := len(raw); i < width; i++ {
				padded[i] = common.NullValue(common.BytesType)
			}
			raw = padded
		}

		row, err := cast.Apply(raw)
		if err != nil {
			if e.ctx.CastPolicy() == CastSkipAndLog {
				e.skipped++
				_ = level.Warn(e.ctx.Logger()).Log(
					"msg", "dropping row that failed to cast",
					"resource", e.plan.Path,
					"err", err,
				)
				continue
			}
			e.err = err
			return false
		}
		e.current = row
		return true
	}

	e.err = e.reader.Err()
	return false
}

func (e *DelimitedScanExecutor) Current() common.Row {
	return e.current
}

// Skipped returns how many records the scan dropped under
// CastSkipAndLog since the last Init.
func (e *DelimitedScanExecutor) Skipped() int64 {
	return e.skipped
}

func (e *DelimitedScanExecutor) Error() error {
	return e.err
}

func (e *DelimitedScanExecutor) Close() error {
	if e.reader != nil {
		return e.reader.Close()
	}
	return nil
}
