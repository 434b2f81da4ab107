package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/nomination-board/logging"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpenRelational connects to PostgreSQL and migrates the schema.
func OpenRelational(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := RunMigration(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

func RunMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&Person{},
		&Nomination{},
		&Vote{},
		&PointReason{},
		&Admin{},
	)
}

func NewRelationalBackend(db *gorm.DB) *Backend {
	return &Backend{
		Name:         "relational",
		Persons:      &RelationalPersonStorage{DB: db},
		Nominations:  &RelationalNominationStorage{DB: db},
		Votes:        &RelationalVoteStorage{DB: db},
		PointReasons: &RelationalPointReasonStorage{DB: db},
		Admins:       &RelationalAdminStorage{DB: db},
		Ledger:       &RelationalLedgerStorage{DB: db},
		closer: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type RelationalPersonStorage struct{ DB *gorm.DB }

func (s *RelationalPersonStorage) Get(ctx context.Context, id string) (*Person, error) {
	var person Person
	if err := s.DB.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &person, nil
}

func (s *RelationalPersonStorage) GetAll(ctx context.Context) ([]*Person, error) {
	var persons []*Person
	if err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&persons).Error; err != nil {
		logging.Log.Errorf("PERSON: list failed: %v", err)
		return nil, err
	}
	return persons, nil
}

func (s *RelationalPersonStorage) Create(ctx context.Context, person *Person) error {
	person.prepare()
	if err := s.DB.WithContext(ctx).Create(person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("PERSON: failed to create person: %v", err)
		return err
	}
	return nil
}

func (s *RelationalPersonStorage) Update(ctx context.Context, id string, patch PersonPatch) (*Person, error) {
	updates := map[string]any{"updated_at": now()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Points != nil {
		updates["points"] = *patch.Points
	}

	res := s.DB.WithContext(ctx).Model(&Person{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		logging.Log.Errorf("PERSON: failed to update person %s: %v", id, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *RelationalPersonStorage) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&Person{}, "id = ?", id)
	if res.Error != nil {
		logging.Log.Errorf("PERSON: failed to delete person %s: %v", id, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type RelationalNominationStorage struct{ DB *gorm.DB }

func (s *RelationalNominationStorage) Get(ctx context.Context, id string) (*Nomination, error) {
	var nomination Nomination
	if err := s.DB.WithContext(ctx).First(&nomination, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &nomination, nil
}

func (s *RelationalNominationStorage) GetAll(ctx context.Context) ([]*Nomination, error) {
	var nominations []*Nomination
	err := s.DB.WithContext(ctx).
		Preload("Person").
		Order("created_at ASC, id ASC").
		Find(&nominations).Error
	if err != nil {
		logging.Log.Errorf("NOMINATION: list failed: %v", err)
		return nil, err
	}
	return nominations, nil
}

func (s *RelationalNominationStorage) Create(ctx context.Context, nomination *Nomination) error {
	nomination.prepare()
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(nomination).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("NOMINATION: failed to create nomination: %v", err)
		return err
	}
	return nil
}

func (s *RelationalNominationStorage) UpdateStatus(ctx context.Context, id string, status NominationStatus) (*Nomination, error) {
	res := s.DB.WithContext(ctx).Model(&Nomination{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

type RelationalVoteStorage struct{ DB *gorm.DB }

func (s *RelationalVoteStorage) GetByNomination(ctx context.Context, nominationID string) ([]*Vote, error) {
	var votes []*Vote
	err := s.DB.WithContext(ctx).
		Where("nomination_id = ?", nominationID).
		Order("created_at ASC, id ASC").
		Find(&votes).Error
	if err != nil {
		logging.Log.Errorf("VOTE: list for nomination %s failed: %v", nominationID, err)
		return nil, err
	}
	return votes, nil
}

func (s *RelationalVoteStorage) Create(ctx context.Context, vote *Vote) error {
	vote.prepare()
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(vote).Error; err != nil {
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	return nil
}

type RelationalPointReasonStorage struct{ DB *gorm.DB }

func (s *RelationalPointReasonStorage) Get(ctx context.Context, id string) (*PointReason, error) {
	var reason PointReason
	if err := s.DB.WithContext(ctx).First(&reason, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reason, nil
}

func (s *RelationalPointReasonStorage) GetByPerson(ctx context.Context, personID string) ([]*PointReason, error) {
	var reasons []*PointReason
	err := s.DB.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("created_at ASC, id ASC").
		Find(&reasons).Error
	if err != nil {
		logging.Log.Errorf("POINTS: list for person %s failed: %v", personID, err)
		return nil, err
	}
	return reasons, nil
}

func (s *RelationalPointReasonStorage) Create(ctx context.Context, reason *PointReason) error {
	reason.prepare()
	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(reason).Error; err != nil {
		logging.Log.Errorf("POINTS: failed to create point reason: %v", err)
		return err
	}
	return nil
}

func (s *RelationalPointReasonStorage) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&PointReason{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type RelationalAdminStorage struct{ DB *gorm.DB }

func (s *RelationalAdminStorage) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	var admin Admin
	err := s.DB.WithContext(ctx).First(&admin, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return checkCredentials(nil, password)
	}
	if err != nil {
		logging.Log.Errorf("ADMIN: lookup for %s failed: %v", username, err)
		return nil, err
	}
	return checkCredentials(&admin, password)
}

func (s *RelationalAdminStorage) Create(ctx context.Context, admin *Admin) error {
	admin.prepare()
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrItemWithIDAlreadyExists
		}
		return err
	}
	return nil
}

func (s *RelationalAdminStorage) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

type RelationalLedgerStorage struct{ DB *gorm.DB }

func (s *RelationalLedgerStorage) Award(ctx context.Context, entry *PointReason) (*Person, error) {
	var person Person
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := awardTx(tx, entry); err != nil {
			return err
		}
		return tx.First(&person, "id = ?", entry.PersonID).Error
	})
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (s *RelationalLedgerStorage) Resolve(ctx context.Context, nominationID string, status NominationStatus, entry *PointReason) (*Nomination, error) {
	var nomination Nomination
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Nomination{}).
			Where("id = ? AND status = ?", nominationID, NominationPending).
			Updates(map[string]any{"status": status, "updated_at": now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&Nomination{}, "id = ?", nominationID).Error; err != nil {
				return notFound(err)
			}
			return ErrConditionFailed
		}

		if entry != nil {
			if err := awardTx(tx, entry); err != nil {
				return err
			}
		}
		return tx.Preload("Person").First(&nomination, "id = ?", nominationID).Error
	})
	if err != nil {
		return nil, err
	}
	return &nomination, nil
}

func (s *RelationalLedgerStorage) Reverse(ctx context.Context, originalID string, reversal *PointReason) (*Person, error) {
	var person Person
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original PointReason
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&original, "id = ?", originalID).Error; err != nil {
			return notFound(err)
		}
		if original.Voided() || original.PointsAdded <= 0 {
			return ErrConditionFailed
		}

		reversal.PersonID = original.PersonID
		reversal.PointsAdded = -abs(original.PointsAdded)
		if err := awardTx(tx, reversal); err != nil {
			return err
		}

		if err := tx.Model(&PointReason{}).Where("id = ?", originalID).
			Updates(map[string]any{"voided_at": reversal.CreatedAt, "voided_by_id": reversal.ID}).Error; err != nil {
			return err
		}
		return tx.First(&person, "id = ?", reversal.PersonID).Error
	})
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (s *RelationalLedgerStorage) DeletePerson(ctx context.Context, personID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nominationIDs := tx.Model(&Nomination{}).Select("id").Where("person_id = ?", personID)
		if err := tx.Where("nomination_id IN (?)", nominationIDs).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", personID).Delete(&Nomination{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", personID).Delete(&PointReason{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Person{}, "id = ?", personID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Recount holds the person row lock while it sums the ledger, so awards and
// reversals, which update the same row, wait for it.
func (s *RelationalLedgerStorage) Recount(ctx context.Context, personID string) (int, int, error) {
	var stored, total int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var person Person
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&person, "id = ?", personID).Error; err != nil {
			return notFound(err)
		}
		stored = person.Points

		if err := tx.Model(&PointReason{}).Where("person_id = ?", personID).
			Select("COALESCE(SUM(points_added), 0)").Scan(&total).Error; err != nil {
			return err
		}
		if total == stored {
			return nil
		}
		return tx.Model(&Person{}).Where("id = ?", personID).Updates(map[string]any{
			"points":     total,
			"updated_at": now(),
		}).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return stored, total, nil
}

func awardTx(tx *gorm.DB, entry *PointReason) error {
	entry.prepare()
	res := tx.Model(&Person{}).Where("id = ?", entry.PersonID).Updates(map[string]any{
		"points":     gorm.Expr("points + ?", entry.PointsAdded),
		"updated_at": entry.CreatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return tx.Omit(clause.Associations).Create(entry).Error
}
