package categorize

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/statement-ledger/internal/domain/transaction"
)

// Result summarizes one recategorization pass.
type Result struct {
	Examined int64 `json:"examined"`
	Updated  int64 `json:"updated"`
	Skipped  int64 `json:"skipped"` // user-set categories, never touched
}

// Recategorizer re-runs the rule engine over stored transactions on demand,
// e.g. after a rule reload. Rows whose category the user set by hand are
// skipped, so edits survive rule changes.
type Recategorizer struct {
	engine *Engine
	repo   transaction.Repository
	pool   *ants.Pool
	logger *slog.Logger
}

// NewRecategorizer creates a recategorizer backed by a worker pool of the
// given size.
func NewRecategorizer(logger *slog.Logger, engine *Engine, repo transaction.Repository, poolSize int) (*Recategorizer, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Recategorizer{
		engine: engine,
		repo:   repo,
		pool:   pool,
		logger: logger,
	}, nil
}

// Run recomputes categories for every stored transaction. Each row is
// evaluated on the worker pool; only rows whose recomputed category differs
// are written back.
func (r *Recategorizer) Run(ctx context.Context) (Result, error) {
	txs, err := r.repo.List(ctx, transaction.ListFilter{})
	if err != nil {
		return Result{}, err
	}

	var result Result
	var wg sync.WaitGroup

	var errMu sync.Mutex
	var runErr error
	recordErr := func(err error) {
		errMu.Lock()
		if runErr == nil {
			runErr = err
		}
		errMu.Unlock()
	}

	for _, t := range txs {
		atomic.AddInt64(&result.Examined, 1)

		if t.CategoryIsUserSet {
			atomic.AddInt64(&result.Skipped, 1)
			continue
		}

		t := t
		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()

			category := r.engine.CategorizeStored(t)
			if category == t.Category {
				return
			}

			updated, err := r.repo.UpdateAutoCategory(ctx, t.ID, category)
			if err != nil {
				r.logger.Error("Failed to update category", "id", t.ID.String(), "error", err)
				recordErr(err)
				return
			}
			if updated {
				atomic.AddInt64(&result.Updated, 1)
			}
		})
		if submitErr != nil {
			wg.Done()
			// In-flight workers still hold the counters and the repo
			wg.Wait()
			return result, submitErr
		}
	}

	wg.Wait()

	if runErr != nil {
		return result, runErr
	}

	r.logger.Info("Recategorization pass complete",
		"examined", result.Examined,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// Shutdown releases the worker pool.
func (r *Recategorizer) Shutdown() {
	r.logger.Info("Shutting down recategorizer worker pool", "running_workers", r.pool.Running())
	r.pool.Release()
}
