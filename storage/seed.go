package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
)

type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	SkipPersons   bool
}

var DefaultPersons = []Person{
	{Name: "Juan Pérez", Description: "Senior developer with five years of experience"},
	{Name: "María García", Description: "UX/UI designer focused on mobile"},
	{Name: "Carlos López", Description: "Project manager, PMP certified"},
	{Name: "Ana Martínez", Description: "Digital marketing specialist"},
	{Name: "Luis Rodríguez", Description: "Data and BI analyst"},
}

// Seed fills an empty backend with the default persons and the default admin. Each
// collection is only seeded when it is empty, so running it twice is harmless.
func Seed(ctx context.Context, b *Backend, opts SeedOptions) error {
	if !opts.SkipPersons {
		persons, err := b.Persons.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("seed: list persons: %w", err)
		}
		if len(persons) == 0 {
			for _, p := range DefaultPersons {
				person := p
				if err := b.Persons.Create(ctx, &person); err != nil {
					return fmt.Errorf("seed: create person %s: %w", p.Name, err)
				}
			}
			logging.Log.Infof("SEED: created %d default persons", len(DefaultPersons))
		}
	}

	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		return nil
	}
	count, err := b.Admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	admin := &Admin{Username: opts.AdminUsername, PasswordHash: hash}
	if err := b.Admins.Create(ctx, admin); err != nil && !errors.Is(err, ErrItemWithIDAlreadyExists) {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	logging.Log.Infof("SEED: created default admin %s", opts.AdminUsername)
	return nil
}
