package reconcile

import (
	"context"
	"testing"

	"github.com/alex-pricope/nomination-board/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()

	healthy := &storage.Person{Name: "Ana"}
	require.NoError(t, b.Persons.Create(ctx, healthy))
	_, err := b.Ledger.Award(ctx, &storage.PointReason{PersonID: healthy.ID, PointsAdded: 1, Reason: "ok", AddedBy: storage.AddedByAdmin})
	require.NoError(t, err)

	// A ledger entry written without the matching total, as after a crash between the two writes.
	drifted := &storage.Person{Name: "Luis"}
	require.NoError(t, b.Persons.Create(ctx, drifted))
	require.NoError(t, b.PointReasons.Create(ctx, &storage.PointReason{PersonID: drifted.ID, PointsAdded: 1, Reason: "lost", AddedBy: storage.AddedByAdmin}))

	drifts, err := NewReconciler(b).Run(ctx)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, drifted.ID, drifts[0].PersonID)
	assert.Equal(t, 0, drifts[0].Stored)
	assert.Equal(t, 1, drifts[0].Ledger)

	repaired, err := b.Persons.Get(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired.Points)

	drifts, err = NewReconciler(b).Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

// racingLedger reports that a concurrent award moved the points of one person.
type racingLedger struct {
	storage.LedgerStorage
	personID string
}

func (l *racingLedger) Recount(ctx context.Context, personID string) (int, int, error) {
	if personID == l.personID {
		return 0, 0, storage.ErrConditionFailed
	}
	return l.LedgerStorage.Recount(ctx, personID)
}

func TestRunSkipsPersonsThatMoved(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()

	busy := &storage.Person{Name: "Ana"}
	require.NoError(t, b.Persons.Create(ctx, busy))
	require.NoError(t, b.PointReasons.Create(ctx, &storage.PointReason{PersonID: busy.ID, PointsAdded: 1, Reason: "lost", AddedBy: storage.AddedByAdmin}))

	drifted := &storage.Person{Name: "Luis"}
	require.NoError(t, b.Persons.Create(ctx, drifted))
	require.NoError(t, b.PointReasons.Create(ctx, &storage.PointReason{PersonID: drifted.ID, PointsAdded: 1, Reason: "lost", AddedBy: storage.AddedByAdmin}))

	b.Ledger = &racingLedger{LedgerStorage: b.Ledger, personID: busy.ID}
	drifts, err := NewReconciler(b).Run(ctx)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, drifted.ID, drifts[0].PersonID)

	untouched, err := b.Persons.Get(ctx, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, untouched.Points)
}

func TestSchedule(t *testing.T) {
	r := NewReconciler(storage.NewMemoryBackend())

	c, err := r.Schedule("@every 1h")
	require.NoError(t, err)
	c.Stop()

	_, err = r.Schedule("not a schedule")
	assert.Error(t, err)
}
