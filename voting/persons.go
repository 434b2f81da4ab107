package voting

import (
	"context"
	"fmt"
	"strings"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/ranking"
	"github.com/alex-pricope/nomination-board/storage"
)

func (s *Service) Leaderboard(ctx context.Context) ([]ranking.Ranked, error) {
	persons, err := s.persons.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return ranking.Rank(persons), nil
}

func (s *Service) ListPersons(ctx context.Context) ([]*storage.Person, error) {
	return s.persons.GetAll(ctx)
}

func (s *Service) GetPerson(ctx context.Context, id string) (*storage.Person, error) {
	return s.persons.Get(ctx, id)
}

func (s *Service) CreatePerson(ctx context.Context, session *auth.Session, input PersonInput) (*storage.Person, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.check(input); err != nil {
		return nil, err
	}

	person := &storage.Person{Name: input.Name, Description: input.Description}
	if err := s.persons.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	logging.Log.Infof("PERSON: %s created %s (%s)", session.Username, person.Name, person.ID)
	return person, nil
}

// PersonChanges is a partial update; points are not editable here and only move
// through the ledger.
type PersonChanges struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Service) UpdatePerson(ctx context.Context, session *auth.Session, id string, changes PersonChanges) (*storage.Person, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	patch := storage.PersonPatch{}
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, fieldError("name", "is required")
		}
		patch.Name = &name
	}
	if changes.Description != nil {
		description := strings.TrimSpace(*changes.Description)
		patch.Description = &description
	}
	if patch.Empty() {
		return nil, fieldError("body", "nothing to update")
	}

	person, err := s.persons.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("PERSON: %s updated %s", session.Username, id)
	return person, nil
}

// DeletePerson removes the person and everything that references it: nominations,
// their votes and the person's ledger.
func (s *Service) DeletePerson(ctx context.Context, session *auth.Session, id string) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	if err := s.ledger.DeletePerson(ctx, id); err != nil {
		return err
	}
	logging.Log.Infof("PERSON: %s deleted %s", session.Username, id)
	return nil
}
