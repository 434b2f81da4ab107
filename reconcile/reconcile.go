// Package reconcile recomputes person totals from the point ledger and repairs any
// drift left behind by a write that only half succeeded.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/robfig/cron/v3"
)

type Drift struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Stored   int    `json:"stored"`
	Ledger   int    `json:"ledger"`
}

type Reconciler struct {
	persons storage.PersonStorage
	ledger  storage.LedgerStorage
	timeout time.Duration
}

func NewReconciler(b *storage.Backend) *Reconciler {
	return &Reconciler{
		persons: b.Persons,
		ledger:  b.Ledger,
		timeout: time.Minute,
	}
}

// Run compares every person's stored points with the sum of its ledger and rewrites
// the stored value when they differ. It returns the corrections it made. A person
// whose points moved during the check is left for the next run.
func (r *Reconciler) Run(ctx context.Context) ([]Drift, error) {
	persons, err := r.persons.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	drifts := make([]Drift, 0)
	skipped := 0
	for _, p := range persons {
		stored, total, err := r.ledger.Recount(ctx, p.ID)
		switch {
		case errors.Is(err, storage.ErrConditionFailed):
			logging.Log.Infof("RECONCILE: points of %s changed during the check, retrying next run", p.ID)
			skipped++
			continue
		case errors.Is(err, storage.ErrNotFound):
			// deleted since the listing
			continue
		case err != nil:
			return drifts, fmt.Errorf("recount %s: %w", p.ID, err)
		}
		if stored == total {
			continue
		}

		logging.Log.Warnf("RECONCILE: person %s (%s) stored %d points, ledger says %d", p.ID, p.Name, stored, total)
		drifts = append(drifts, Drift{PersonID: p.ID, Name: p.Name, Stored: stored, Ledger: total})
	}

	logging.Log.Infof("RECONCILE: checked %d persons, repaired %d, skipped %d", len(persons), len(drifts), skipped)
	return drifts, nil
}

// Schedule runs the reconciler on a cron spec such as "@every 15m" or "0 3 * * *".
// The caller stops the returned scheduler.
func (r *Reconciler) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			logging.Log.Errorf("RECONCILE: scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}
	c.Start()
	logging.Log.Infof("RECONCILE: scheduled with %q", spec)
	return c, nil
}
