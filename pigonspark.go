// Package pigonspark translates source logical plans into typed target
// plans and runs them over delimited text resources.
//
// The usual flow: a front end hands over the root of a source plan,
// Translate turns it into a target plan tree, and the Engine registers,
// explains, caches, and executes those plans. Translation is pure;
// resources are only touched when a plan runs.
package pigonspark

import (
	"github.com/go-kit/log"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/catalog"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/execution"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/pig"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/translate"
)

// Translate converts a source plan into a target plan without executing
// it. Engine methods use the same translation; this entry point serves
// callers that only want the tree.
func Translate(node pig.Node) (planner.PlanNode, error) {
	return translate.Translate(node)
}

// Options configures an Engine. The zero value runs quietly and fails on
// the first record that does not cast.
type Options struct {
	// Logger receives execution-time events (skipped rows, sink writes).
	// nil logs nothing.
	Logger log.Logger

	// CastPolicy decides whether a record that fails to cast aborts the
	// run or is dropped and logged.
	CastPolicy execution.CastPolicy

	// PadShortRows extends records shorter than the declared schema with
	// NULL fields instead of failing them.
	PadShortRows bool
}

// Engine is the top-level container: a plan registry plus the execution
// options shared by every run.
type Engine struct {
	Registry *catalog.Registry

	opts Options
}

func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	return &Engine{
		Registry: catalog.NewRegistry(),
		opts:     opts,
	}
}

// Register translates a source plan and files the result under alias.
func (e *Engine) Register(alias string, node pig.Node) (planner.PlanNode, error) {
	plan, err := translate.Translate(node)
	if err != nil {
		return nil, err
	}
	if _, err := e.Registry.Register(alias, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Run translates and executes a source plan, returning the rows its root
// produces.
func (e *Engine) Run(node pig.Node) ([]common.Row, error) {
	plan, err := translate.Translate(node)
	if err != nil {
		return nil, err
	}
	return e.execute(plan)
}

// RunAlias executes a registered plan. A cached result is served without
// touching storage.
func (e *Engine) RunAlias(alias string) ([]common.Row, error) {
	entry, err := e.Registry.Lookup(alias)
	if err != nil {
		return nil, err
	}
	if rows, ok := entry.Cached(); ok {
		return rows, nil
	}
	return e.execute(entry.Plan)
}

// Cache materializes a registered plan and pins its result, so later
// RunAlias calls serve it without re-reading resources.
func (e *Engine) Cache(alias string) error {
	entry, err := e.Registry.Lookup(alias)
	if err != nil {
		return err
	}
	rows, err := e.execute(entry.Plan)
	if err != nil {
		return err
	}
	entry.Cache(rows)
	return nil
}

// Uncache drops a pinned result. The plan stays registered.
func (e *Engine) Uncache(alias string) error {
	entry, err := e.Registry.Lookup(alias)
	if err != nil {
		return err
	}
	entry.Uncache()
	return nil
}

// Explain renders a registered plan as an indented operator tree.
func (e *Engine) Explain(alias string) (string, error) {
	return e.Registry.Explain(alias)
}

// Aliases lists the registered aliases in sorted order.
func (e *Engine) Aliases() []string {
	return e.Registry.Aliases()
}

func (e *Engine) execute(plan planner.PlanNode) ([]common.Row, error) {
	exec, err := execution.Build(plan)
	if err != nil {
		return nil, err
	}
	defer exec.Close()

	ctx := execution.NewExecutorContext(e.opts.Logger, e.opts.CastPolicy, e.opts.PadShortRows)
	if err := exec.Init(ctx); err != nil {
		return nil, err
	}

	var rows []common.Row
	for exec.Next() {
		rows = append(rows, exec.Current())
	}
	if err := exec.Error(); err != nil {
		return nil, err
	}
	return rows, nil
}
