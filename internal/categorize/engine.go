package categorize

import (
	"sync"

	"github.com/statement-ledger/internal/domain/transaction"
)

// Engine assigns categories by first-match-wins evaluation of an ordered
// rule set. The active set is swapped atomically on reload, so a
// categorization pass always sees one consistent rule list.
type Engine struct {
	mu    sync.RWMutex
	rules []compiledRule
}

// NewEngine creates an engine from the given rules.
// Returns an error when any rule fails to compile.
func NewEngine(rules []Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Reload validates and atomically swaps in a new rule set. On error the
// previous set stays active.
func (e *Engine) Reload(rules []Rule) error {
	compiled, err := compileRules(rules)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()
	return nil
}

// RuleCount reports the number of active rules.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// Categorize returns the category for a candidate: the first rule (ascending
// priority, declaration order on ties) whose pattern matches the merchant or
// description, or the fallback category when nothing matches. Matching is
// case-insensitive and never fails.
func (e *Engine) Categorize(c transaction.Candidate) string {
	return e.categorize(c.Merchant, c.Description)
}

// CategorizeStored re-evaluates a stored transaction, preserving any
// category the user set by hand.
func (e *Engine) CategorizeStored(t *transaction.Transaction) string {
	if t.CategoryIsUserSet {
		return t.Category
	}
	return e.categorize(t.Merchant, t.Description)
}

func (e *Engine) categorize(merchant, description string) string {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	for _, r := range rules {
		switch r.rule.Field {
		case FieldMerchant:
			if r.matchText(merchant) {
				return r.rule.Category
			}
		case FieldDescription:
			if r.matchText(description) {
				return r.rule.Category
			}
		default: // FieldAny
			if r.matchText(merchant) || r.matchText(description) {
				return r.rule.Category
			}
		}
	}

	return transaction.FallbackCategory
}
