package storage

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const idLength = 12

func NewID() string {
	return gonanoid.MustGenerate(idAlphabet, idLength)
}

func now() time.Time {
	return time.Now().UTC()
}

func (p *Person) prepare() {
	if p.ID == "" {
		p.ID = NewID()
	}
	t := now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = t
	}
	p.UpdatedAt = t
}

func (n *Nomination) prepare() {
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.Status == "" {
		n.Status = NominationPending
	}
	t := now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = t
	}
	n.UpdatedAt = t
}

func (v *Vote) prepare() {
	if v.ID == "" {
		v.ID = NewID()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now()
	}
}

func (r *PointReason) prepare() {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now()
	}
}

func (a *Admin) prepare() {
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}
}

func (p *Person) apply(patch PersonPatch, at time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Points != nil {
		p.Points = *patch.Points
	}
	p.UpdatedAt = at
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
