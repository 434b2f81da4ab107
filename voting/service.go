// Package voting holds the rules of the nomination board: how nominations are
// submitted, voted on and resolved, and how points move in the ledger.
package voting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type Service struct {
	persons      storage.PersonStorage
	nominations  storage.NominationStorage
	votes        storage.VoteStorage
	pointReasons storage.PointReasonStorage
	ledger       storage.LedgerStorage
	validate     *validator.Validate
}

func NewService(b *storage.Backend) *Service {
	return &Service{
		persons:      b.Persons,
		nominations:  b.Nominations,
		votes:        b.Votes,
		pointReasons: b.PointReasons,
		ledger:       b.Ledger,
		validate:     newValidator(),
	}
}

type VoteCounts struct {
	For     int `json:"for"`
	Against int `json:"against"`
	Abstain int `json:"abstain"`
	Total   int `json:"total"`
}

// Tally counts votes by type. Unknown types only count towards the total.
func Tally(votes []*storage.Vote) VoteCounts {
	byType := lo.CountValuesBy(votes, func(v *storage.Vote) storage.VoteType { return v.VoteType })
	return VoteCounts{
		For:     byType[storage.VoteFor],
		Against: byType[storage.VoteAgainst],
		Abstain: byType[storage.VoteAbstain],
		Total:   len(votes),
	}
}

func requireAdmin(session *auth.Session) error {
	if !session.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) SubmitNomination(ctx context.Context, input NominationInput) (*storage.Nomination, error) {
	input.PersonID = strings.TrimSpace(input.PersonID)
	input.NominatorName = strings.TrimSpace(input.NominatorName)
	input.Reason = strings.TrimSpace(input.Reason)
	if err := s.check(input); err != nil {
		return nil, err
	}

	person, err := s.persons.Get(ctx, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("load person: %w", err)
	}

	all, err := s.nominations.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}
	if lo.ContainsBy(all, func(n *storage.Nomination) bool {
		return n.PersonID == person.ID && n.Status == storage.NominationPending
	}) {
		return nil, ErrPendingNominationExists
	}

	nomination := &storage.Nomination{
		PersonID:      person.ID,
		NominatorName: input.NominatorName,
		Reason:        input.Reason,
		Status:        storage.NominationPending,
	}
	if err := s.nominations.Create(ctx, nomination); err != nil {
		return nil, fmt.Errorf("create nomination: %w", err)
	}
	nomination.Person = person

	logging.Log.Infof("NOMINATION: %s nominated %s (%s)", nomination.NominatorName, person.Name, nomination.ID)
	return nomination, nil
}

// ListNominations returns nominations newest first. An empty status returns all of them.
func (s *Service) ListNominations(ctx context.Context, status storage.NominationStatus) ([]*storage.Nomination, error) {
	all, err := s.nominations.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}
	if status != "" {
		all = lo.Filter(all, func(n *storage.Nomination, _ int) bool { return n.Status == status })
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (s *Service) GetNomination(ctx context.Context, id string) (*storage.Nomination, error) {
	return s.nominations.Get(ctx, id)
}

func (s *Service) CastVote(ctx context.Context, input VoteInput) (*storage.Vote, error) {
	input.NominationID = strings.TrimSpace(input.NominationID)
	input.VoterName = strings.TrimSpace(input.VoterName)
	input.VoteType = strings.TrimSpace(input.VoteType)
	if err := s.check(input); err != nil {
		return nil, err
	}

	nomination, err := s.nominations.Get(ctx, input.NominationID)
	if err != nil {
		return nil, err
	}
	if nomination.Status != storage.NominationPending {
		return nil, ErrNominationClosed
	}

	vote := &storage.Vote{
		NominationID: nomination.ID,
		VoterName:    input.VoterName,
		VoteType:     storage.VoteType(input.VoteType),
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		return nil, fmt.Errorf("create vote: %w", err)
	}
	logging.Log.Infof("VOTE: %s voted %s on nomination %s", vote.VoterName, vote.VoteType, nomination.ID)
	return vote, nil
}

func (s *Service) Votes(ctx context.Context, nominationID string) ([]*storage.Vote, VoteCounts, error) {
	if _, err := s.nominations.Get(ctx, nominationID); err != nil {
		return nil, VoteCounts{}, err
	}
	votes, err := s.votes.GetByNomination(ctx, nominationID)
	if err != nil {
		return nil, VoteCounts{}, fmt.Errorf("list votes: %w", err)
	}
	return votes, Tally(votes), nil
}

func (s *Service) VoteCounts(ctx context.Context, nominationID string) (VoteCounts, error) {
	_, counts, err := s.Votes(ctx, nominationID)
	return counts, err
}

// ResolveNomination moves a pending nomination to approved or rejected. Approval
// awards one point to the nominated person in the same storage write.
func (s *Service) ResolveNomination(ctx context.Context, session *auth.Session, nominationID string, decision storage.NominationStatus) (*storage.Nomination, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if decision != storage.NominationApproved && decision != storage.NominationRejected {
		return nil, fieldError("status", "must be one of: approved, rejected")
	}

	nomination, err := s.nominations.Get(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	if nomination.Status != storage.NominationPending {
		return nil, ErrNominationResolved
	}

	var entry *storage.PointReason
	if decision == storage.NominationApproved {
		id := nomination.ID
		entry = &storage.PointReason{
			PersonID:     nomination.PersonID,
			PointsAdded:  1,
			Reason:       nomination.Reason,
			AddedBy:      storage.AddedByNomination,
			NominationID: &id,
		}
	}

	resolved, err := s.ledger.Resolve(ctx, nominationID, decision, entry)
	if err != nil {
		if errors.Is(err, storage.ErrConditionFailed) {
			return nil, ErrNominationResolved
		}
		return nil, err
	}
	logging.Log.Infof("NOMINATION: %s set %s to %s", session.Username, nominationID, decision)
	return resolved, nil
}
