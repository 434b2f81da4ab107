package storage

import "context"

// LedgerStorage groups the writes that touch more than one collection. Every backend
// performs each method as a single atomic unit where the underlying store allows it.
type LedgerStorage interface {
	// Award adds entry.PointsAdded to the person's total and appends entry.
	Award(ctx context.Context, entry *PointReason) (*Person, error)
	// Resolve moves a pending nomination to status. When entry is not nil it is
	// awarded in the same unit. Returns ErrConditionFailed if the nomination is not pending.
	Resolve(ctx context.Context, nominationID string, status NominationStatus, entry *PointReason) (*Nomination, error)
	// Reverse voids the entry originalID and appends reversal, whose PersonID and
	// PointsAdded are derived from the original. Returns ErrConditionFailed if the
	// original is already void or not a positive award.
	Reverse(ctx context.Context, originalID string, reversal *PointReason) (*Person, error)
	// DeletePerson removes the person together with its nominations, their votes
	// and the person's ledger entries.
	DeletePerson(ctx context.Context, personID string) error
	// Recount compares the person's stored points with the sum of its ledger and,
	// when they differ, stores the ledger sum. It returns both values as read. If an
	// award or reversal lands while the sum is computed the write is refused with
	// ErrConditionFailed and nothing changes.
	Recount(ctx context.Context, personID string) (stored, ledger int, err error)
}

// Backend bundles one implementation of every collection.
type Backend struct {
	Name         string
	Persons      PersonStorage
	Nominations  NominationStorage
	Votes        VoteStorage
	PointReasons PointReasonStorage
	Admins       AdminStorage
	Ledger       LedgerStorage

	closer func() error
}

func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}
