package execution

import (
	"github.com/go-kit/log"
)

// CastPolicy decides what a scan does with a row whose raw fields do not
// decode to the declared schema.
type CastPolicy int8

const (
	// CastFailFast aborts execution on the first row that fails to cast.
	CastFailFast CastPolicy = iota
	// CastSkipAndLog drops each row that fails to cast and logs it at
	// warn level, letting the rest of the resource flow.
	CastSkipAndLog
)

// ExecutorContext holds the state and knobs shared by every executor of
// one plan run. It is passed to every Executor during Init.
type ExecutorContext struct {
	logger       log.Logger
	castPolicy   CastPolicy
	padShortRows bool
}

// NewExecutorContext builds a context. A nil logger means log nothing.
func NewExecutorContext(logger log.Logger, castPolicy CastPolicy, padShortRows bool) *ExecutorContext {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &ExecutorContext{
		logger:       logger,
		castPolicy:   castPolicy,
		padShortRows: padShortRows,
	}
}

func (ctx *ExecutorContext) Logger() log.Logger {
	return ctx.logger
}

func (ctx *ExecutorContext) CastPolicy() CastPolicy {
	return ctx.castPolicy
}

// PadShortRows reports whether a scan should extend records shorter than
// the declared schema with NULL fields instead of treating the missing
// columns as cast failures.
func (ctx *ExecutorContext) PadShortRows() bool {
	return ctx.padShortRows
}
