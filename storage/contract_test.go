package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, b *Backend) {
	ctx := context.Background()

	t.Run("Persons CRUD", func(t *testing.T) {
		p := &Person{Name: "Ana", Description: "Marketing"}
		require.NoError(t, b.Persons.Create(ctx, p))
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, 0, p.Points)
		assert.False(t, p.CreatedAt.IsZero())

		got, err := b.Persons.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)

		name := "Ana María"
		updated, err := b.Persons.Update(ctx, p.ID, PersonPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", updated.Name)
		assert.Equal(t, "Marketing", updated.Description)

		_, err = b.Persons.Update(ctx, "missing", PersonPatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, b.Persons.Delete(ctx, p.ID))
		_, err = b.Persons.Get(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, b.Persons.Delete(ctx, p.ID), ErrNotFound)
	})

	t.Run("Nominations are joined with their person", func(t *testing.T) {
		p := &Person{Name: "Luis"}
		require.NoError(t, b.Persons.Create(ctx, p))
		n := &Nomination{PersonID: p.ID, NominatorName: "Marta", Reason: "Ran the onboarding sessions"}
		require.NoError(t, b.Nominations.Create(ctx, n))
		assert.Equal(t, NominationPending, n.Status)

		all, err := b.Nominations.GetAll(ctx)
		require.NoError(t, err)
		var found *Nomination
		for _, candidate := range all {
			if candidate.ID == n.ID {
				found = candidate
			}
		}
		require.NotNil(t, found)
		require.NotNil(t, found.Person)
		assert.Equal(t, "Luis", found.Person.Name)

		updated, err := b.Nominations.UpdateStatus(ctx, n.ID, NominationRejected)
		require.NoError(t, err)
		assert.Equal(t, NominationRejected, updated.Status)

		_, err = b.Nominations.UpdateStatus(ctx, "missing", NominationRejected)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Votes are listed per nomination", func(t *testing.T) {
		p := &Person{Name: "Carlos"}
		require.NoError(t, b.Persons.Create(ctx, p))
		n := &Nomination{PersonID: p.ID, NominatorName: "Marta", Reason: "Fixed the build pipeline"}
		require.NoError(t, b.Nominations.Create(ctx, n))

		require.NoError(t, b.Votes.Create(ctx, &Vote{NominationID: n.ID, VoterName: "Ana", VoteType: VoteFor}))
		require.NoError(t, b.Votes.Create(ctx, &Vote{NominationID: n.ID, VoterName: "Ana", VoteType: VoteAgainst}))

		votes, err := b.Votes.GetByNomination(ctx, n.ID)
		require.NoError(t, err)
		assert.Len(t, votes, 2)

		none, err := b.Votes.GetByNomination(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Point reasons create and delete", func(t *testing.T) {
		p := &Person{Name: "María"}
		require.NoError(t, b.Persons.Create(ctx, p))
		r := &PointReason{PersonID: p.ID, PointsAdded: 1, Reason: "Imported", AddedBy: AddedByAdmin}
		require.NoError(t, b.PointReasons.Create(ctx, r))

		list, err := b.PointReasons.GetByPerson(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Nil(t, list[0].NominationID)
		assert.False(t, list[0].Voided())

		require.NoError(t, b.PointReasons.Delete(ctx, r.ID))
		assert.ErrorIs(t, b.PointReasons.Delete(ctx, r.ID), ErrNotFound)
	})

	t.Run("Ledger keeps points equal to the ledger sum", func(t *testing.T) {
		p := &Person{Name: "Juan"}
		require.NoError(t, b.Persons.Create(ctx, p))
		n := &Nomination{PersonID: p.ID, NominatorName: "Marta", Reason: "Mentored two new hires"}
		require.NoError(t, b.Nominations.Create(ctx, n))

		nominationID := n.ID
		resolved, err := b.Ledger.Resolve(ctx, n.ID, NominationApproved, &PointReason{
			PersonID: p.ID, PointsAdded: 1, Reason: n.Reason, AddedBy: AddedByNomination, NominationID: &nominationID,
		})
		require.NoError(t, err)
		assert.Equal(t, NominationApproved, resolved.Status)

		_, err = b.Ledger.Resolve(ctx, n.ID, NominationRejected, nil)
		assert.ErrorIs(t, err, ErrConditionFailed)

		award := &PointReason{PersonID: p.ID, PointsAdded: 1, Reason: "Manual", AddedBy: AddedByAdmin}
		person, err := b.Ledger.Award(ctx, award)
		require.NoError(t, err)
		assert.Equal(t, 2, person.Points)

		person, err = b.Ledger.Reverse(ctx, award.ID, &PointReason{Reason: "Oops", AddedBy: AddedByAdmin})
		require.NoError(t, err)
		assert.Equal(t, 1, person.Points)

		_, err = b.Ledger.Reverse(ctx, award.ID, &PointReason{Reason: "Oops", AddedBy: AddedByAdmin})
		assert.ErrorIs(t, err, ErrConditionFailed)

		entries, err := b.PointReasons.GetByPerson(ctx, p.ID)
		require.NoError(t, err)
		sum := 0
		for _, e := range entries {
			sum += e.PointsAdded
		}
		assert.Len(t, entries, 3)
		assert.Equal(t, person.Points, sum)

		_, err = b.Ledger.Award(ctx, &PointReason{PersonID: "missing", PointsAdded: 1, Reason: "x", AddedBy: AddedByAdmin})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Recount stores the ledger sum", func(t *testing.T) {
		p := &Person{Name: "Pablo"}
		require.NoError(t, b.Persons.Create(ctx, p))
		_, err := b.Ledger.Award(ctx, &PointReason{PersonID: p.ID, PointsAdded: 1, Reason: "Manual", AddedBy: AddedByAdmin})
		require.NoError(t, err)

		stored, total, err := b.Ledger.Recount(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored)
		assert.Equal(t, 1, total)

		// an entry written without its total
		require.NoError(t, b.PointReasons.Create(ctx, &PointReason{PersonID: p.ID, PointsAdded: 1, Reason: "Lost", AddedBy: AddedByAdmin}))
		stored, total, err = b.Ledger.Recount(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored)
		assert.Equal(t, 2, total)

		got, err := b.Persons.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Points)

		_, _, err = b.Ledger.Recount(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete person cascades", func(t *testing.T) {
		p := &Person{Name: "Marta"}
		require.NoError(t, b.Persons.Create(ctx, p))
		n := &Nomination{PersonID: p.ID, NominatorName: "Luis", Reason: "Organised the hackathon"}
		require.NoError(t, b.Nominations.Create(ctx, n))
		require.NoError(t, b.Votes.Create(ctx, &Vote{NominationID: n.ID, VoterName: "Ana", VoteType: VoteFor}))
		_, err := b.Ledger.Award(ctx, &PointReason{PersonID: p.ID, PointsAdded: 1, Reason: "Manual", AddedBy: AddedByAdmin})
		require.NoError(t, err)

		require.NoError(t, b.Ledger.DeletePerson(ctx, p.ID))

		_, err = b.Nominations.Get(ctx, n.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		votes, err := b.Votes.GetByNomination(ctx, n.ID)
		require.NoError(t, err)
		assert.Empty(t, votes)
		entries, err := b.PointReasons.GetByPerson(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.ErrorIs(t, b.Ledger.DeletePerson(ctx, p.ID), ErrNotFound)
	})

	t.Run("Admins authenticate against a bcrypt hash", func(t *testing.T) {
		hash, err := auth.HashPassword("admin123")
		require.NoError(t, err)
		require.NoError(t, b.Admins.Create(ctx, &Admin{Username: "admin", PasswordHash: hash}))
		assert.True(t, errors.Is(b.Admins.Create(ctx, &Admin{Username: "admin", PasswordHash: hash}), ErrItemWithIDAlreadyExists))

		admin, err := b.Admins.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Username)

		_, err = b.Admins.Authenticate(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = b.Admins.Authenticate(ctx, "nobody", "admin123")
		assert.ErrorIs(t, err, ErrNotFound)

		count, err := b.Admins.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestMemoryBackend(t *testing.T) {
	runContract(t, NewMemoryBackend())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	opts := SeedOptions{AdminUsername: "admin", AdminPassword: "admin123"}

	require.NoError(t, Seed(ctx, b, opts))
	require.NoError(t, Seed(ctx, b, opts))

	persons, err := b.Persons.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, len(DefaultPersons))
	for _, p := range persons {
		assert.Equal(t, 0, p.Points)
	}

	count, err := b.Admins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = b.Admins.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}
