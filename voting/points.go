package voting

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/storage"
)

// PointHistory returns a person's ledger, newest entry first.
func (s *Service) PointHistory(ctx context.Context, personID string) ([]*storage.PointReason, error) {
	if _, err := s.persons.Get(ctx, personID); err != nil {
		return nil, err
	}
	entries, err := s.pointReasons.GetByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Service) AwardPoint(ctx context.Context, session *auth.Session, personID string, input PointInput) (*storage.Person, *storage.PointReason, error) {
	if err := requireAdmin(session); err != nil {
		return nil, nil, err
	}
	input.Reason = strings.TrimSpace(input.Reason)
	if err := s.check(input); err != nil {
		return nil, nil, err
	}

	entry := &storage.PointReason{
		PersonID:    personID,
		PointsAdded: 1,
		Reason:      input.Reason,
		AddedBy:     storage.AddedByAdmin,
	}
	person, err := s.ledger.Award(ctx, entry)
	if err != nil {
		return nil, nil, err
	}
	logging.Log.Infof("POINTS: %s awarded a point to %s", session.Username, personID)
	return person, entry, nil
}

// ReversePoint cancels a positive ledger entry. The original stays in the ledger
// marked void and a negative entry records why it was taken back.
func (s *Service) ReversePoint(ctx context.Context, session *auth.Session, pointReasonID string, input PointInput) (*storage.Person, *storage.PointReason, error) {
	if err := requireAdmin(session); err != nil {
		return nil, nil, err
	}
	input.Reason = strings.TrimSpace(input.Reason)
	if err := s.check(input); err != nil {
		return nil, nil, err
	}

	reversal := &storage.PointReason{
		Reason:  input.Reason,
		AddedBy: storage.AddedByAdmin,
	}
	person, err := s.ledger.Reverse(ctx, pointReasonID, reversal)
	if err != nil {
		if errors.Is(err, storage.ErrConditionFailed) {
			return nil, nil, ErrNotReversible
		}
		return nil, nil, err
	}
	logging.Log.Infof("POINTS: %s reversed %s with %s", session.Username, pointReasonID, reversal.ID)
	return person, reversal, nil
}
