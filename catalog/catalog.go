// Package catalog tracks translated plans by alias. A front end
// translates each source operator it sees and registers the resulting
// plan under the operator's alias; later statements, EXPLAIN requests,
// and cached materializations all resolve through the registry.
//
// The registry is safe for concurrent use. Entries themselves are
// immutable after registration except for the cached result, which is
// guarded per entry.
package catalog

import (
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// Entry is one registered plan. Alias and Plan are fixed at
// registration; the cached result is mutable under the entry's lock.
type Entry struct {
	Alias string
	Plan  planner.PlanNode

	mu       sync.RWMutex
	cached   []common.Row
	hasCache bool
}

// Cache stores a materialized result for the entry's plan. The entry
// keeps its own copy of the rows so later writes through the caller's
// slice cannot bypass the lock. An empty result is cacheable; Cached
// tells "cached empty" and "not cached" apart.
func (e *Entry) Cache(rows []common.Row) {
	owned := make([]common.Row, len(rows))
	for i, r := range rows {
		owned[i] = r.Clone()
	}
	e.mu.Lock()
	e.cached = owned
	e.hasCache = true
	e.mu.Unlock()
}

// Cached returns the materialized result, if one is stored.
func (e *Entry) Cached() ([]common.Row, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cached, e.hasCache
}

// Uncache discards the materialized result.
func (e *Entry) Uncache() {
	e.mu.Lock()
	e.cached = nil
	e.hasCache = false
	e.mu.Unlock()
}

// Registry is the alias table of a session: every plan a front end has
// registered, by name.
type Registry struct {
	entries *xsync.MapOf[string, *Entry]
}

func NewRegistry() *Registry {
	return &Registry{
		entries: xsync.NewMapOf[string, *Entry](),
	}
}

// Register files a plan under an alias. Aliases are single-assignment:
// re-registering a live alias is an error, drop it first.
func (r *Registry) Register(alias string, plan planner.PlanNode) (*Entry, error) {
	common.Assert(plan != nil, "cannot register a nil plan")

	entry := &Entry{Alias: alias, Plan: plan}
	if _, loaded := r.entries.LoadOrStore(alias, entry); loaded {
		return nil, common.NewPlanError(common.DuplicateAliasError, "alias %q is already registered", alias)
	}
	return entry, nil
}

// Lookup returns the entry registered under alias.
func (r *Registry) Lookup(alias string) (*Entry, error) {
	entry, ok := r.entries.Load(alias)
	if !ok {
		return nil, common.NewPlanError(common.NoSuchAliasError, "no plan registered under alias %q", alias)
	}
	return entry, nil
}

// Drop removes an alias together with its cached result.
func (r *Registry) Drop(alias string) error {
	if _, loaded := r.entries.LoadAndDelete(alias); !loaded {
		return common.NewPlanError(common.NoSuchAliasError, "no plan registered under alias %q", alias)
	}
	return nil
}

// Aliases returns the registered aliases in sorted order.
func (r *Registry) Aliases() []string {
	names := make([]string, 0, r.entries.Size())
	r.entries.Range(func(alias string, _ *Entry) bool {
		names = append(names, alias)
		return true
	})
	sort.Strings(names)
	return names
}

// Explain renders the plan registered under alias as an indented tree.
func (r *Registry) Explain(alias string) (string, error) {
	entry, err := r.Lookup(alias)
	if err != nil {
		return "", err
	}
	return planner.Format(entry.Plan), nil
}
