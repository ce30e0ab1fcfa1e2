package translate

import (
	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/pig"
	"github.com/SrinivasanNagarajaRao/pig-on-spark/planner"
)

// Translator wraps Translate for drivers that visit a script plan
// operator by operator as the front end emits it. It remembers the most
// recently translated tree, which for a bottom-up emission order is the
// whole plan once the walk finishes.
//
// Not safe for concurrent use; each script walk owns one Translator.
type Translator struct {
	root planner.PlanNode
}

func NewTranslator() *Translator {
	return &Translator{}
}

// Visit translates the subtree rooted at node and records the result as
// the current root.
func (t *Translator) Visit(node pig.Node) (planner.PlanNode, error) {
	out, err := Translate(node)
	if err != nil {
		return nil, err
	}
	t.root = out
	return out, nil
}

// Root returns the most recently translated plan. Asking before any
// visit succeeded is an error, not an empty plan.
func (t *Translator) Root() (planner.PlanNode, error) {
	if t.root == nil {
		return nil, common.NewPlanError(common.NoRootError, "no plan has been translated yet")
	}
	return t.root, nil
}

// Reset forgets the current root so the Translator can serve another
// script walk.
func (t *Translator) Reset() {
	t.root = nil
}
