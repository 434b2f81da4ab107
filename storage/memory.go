package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
)

type memTable[T any] struct {
	rows  map[string]T
	order []string
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{rows: make(map[string]T)}
}

func (t *memTable[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *memTable[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *memTable[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return true
}

// list returns the rows in insertion order.
func (t *memTable[T]) list(keep func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// MemoryStore keeps every collection in process memory behind one lock. It is the
// ephemeral backend: nothing survives a restart.
type MemoryStore struct {
	mu sync.RWMutex

	persons      *memTable[Person]
	nominations  *memTable[Nomination]
	votes        *memTable[Vote]
	pointReasons *memTable[PointReason]
	admins       *memTable[Admin]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		persons:      newMemTable[Person](),
		nominations:  newMemTable[Nomination](),
		votes:        newMemTable[Vote](),
		pointReasons: newMemTable[PointReason](),
		admins:       newMemTable[Admin](),
	}
}

func NewMemoryBackend() *Backend {
	s := NewMemoryStore()
	return &Backend{
		Name:         "memory",
		Persons:      &MemoryPersonStorage{store: s},
		Nominations:  &MemoryNominationStorage{store: s},
		Votes:        &MemoryVoteStorage{store: s},
		PointReasons: &MemoryPointReasonStorage{store: s},
		Admins:       &MemoryAdminStorage{store: s},
		Ledger:       &MemoryLedgerStorage{store: s},
	}
}

type MemoryPersonStorage struct{ store *MemoryStore }

func (m *MemoryPersonStorage) Get(_ context.Context, id string) (*Person, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	p, ok := m.store.persons.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryPersonStorage) GetAll(_ context.Context) ([]*Person, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return pointers(m.store.persons.list(nil)), nil
}

func (m *MemoryPersonStorage) Create(_ context.Context, person *Person) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	person.prepare()
	if _, ok := m.store.persons.get(person.ID); ok {
		return ErrItemWithIDAlreadyExists
	}
	m.store.persons.put(person.ID, *person)
	return nil
}

func (m *MemoryPersonStorage) Update(_ context.Context, id string, patch PersonPatch) (*Person, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	p, ok := m.store.persons.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	p.apply(patch, now())
	m.store.persons.put(id, p)
	return &p, nil
}

func (m *MemoryPersonStorage) Delete(_ context.Context, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if !m.store.persons.remove(id) {
		return ErrNotFound
	}
	return nil
}

type MemoryNominationStorage struct{ store *MemoryStore }

func (m *MemoryNominationStorage) Get(_ context.Context, id string) (*Nomination, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	n, ok := m.store.nominations.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (m *MemoryNominationStorage) GetAll(_ context.Context) ([]*Nomination, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	out := pointers(m.store.nominations.list(nil))
	for _, n := range out {
		if p, ok := m.store.persons.get(n.PersonID); ok {
			n.Person = &p
		}
	}
	return out, nil
}

func (m *MemoryNominationStorage) Create(_ context.Context, nomination *Nomination) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	nomination.prepare()
	if _, ok := m.store.nominations.get(nomination.ID); ok {
		return ErrItemWithIDAlreadyExists
	}
	stored := *nomination
	stored.Person = nil
	m.store.nominations.put(stored.ID, stored)
	return nil
}

func (m *MemoryNominationStorage) UpdateStatus(_ context.Context, id string, status NominationStatus) (*Nomination, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	n, ok := m.store.nominations.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	n.Status = status
	n.UpdatedAt = now()
	m.store.nominations.put(id, n)
	return &n, nil
}

type MemoryVoteStorage struct{ store *MemoryStore }

func (m *MemoryVoteStorage) GetByNomination(_ context.Context, nominationID string) ([]*Vote, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return pointers(m.store.votes.list(func(v Vote) bool { return v.NominationID == nominationID })), nil
}

func (m *MemoryVoteStorage) Create(_ context.Context, vote *Vote) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	vote.prepare()
	if _, ok := m.store.votes.get(vote.ID); ok {
		return ErrItemWithIDAlreadyExists
	}
	m.store.votes.put(vote.ID, *vote)
	return nil
}

type MemoryPointReasonStorage struct{ store *MemoryStore }

func (m *MemoryPointReasonStorage) Get(_ context.Context, id string) (*PointReason, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	r, ok := m.store.pointReasons.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryPointReasonStorage) GetByPerson(_ context.Context, personID string) ([]*PointReason, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return pointers(m.store.pointReasons.list(func(r PointReason) bool { return r.PersonID == personID })), nil
}

func (m *MemoryPointReasonStorage) Create(_ context.Context, reason *PointReason) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	reason.prepare()
	if _, ok := m.store.pointReasons.get(reason.ID); ok {
		return ErrItemWithIDAlreadyExists
	}
	m.store.pointReasons.put(reason.ID, *reason)
	return nil
}

func (m *MemoryPointReasonStorage) Delete(_ context.Context, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if !m.store.pointReasons.remove(id) {
		return ErrNotFound
	}
	return nil
}

type MemoryAdminStorage struct{ store *MemoryStore }

func (m *MemoryAdminStorage) Authenticate(_ context.Context, username, password string) (*Admin, error) {
	m.store.mu.RLock()
	a, ok := m.store.admins.get(username)
	m.store.mu.RUnlock()
	if !ok {
		return checkCredentials(nil, password)
	}
	return checkCredentials(&a, password)
}

func (m *MemoryAdminStorage) Create(_ context.Context, admin *Admin) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	admin.prepare()
	if _, ok := m.store.admins.get(admin.Username); ok {
		return ErrItemWithIDAlreadyExists
	}
	m.store.admins.put(admin.Username, *admin)
	return nil
}

func (m *MemoryAdminStorage) Count(_ context.Context) (int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.admins.rows), nil
}

type MemoryLedgerStorage struct{ store *MemoryStore }

func (m *MemoryLedgerStorage) Award(_ context.Context, entry *PointReason) (*Person, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.award(entry)
}

func (m *MemoryLedgerStorage) Resolve(_ context.Context, nominationID string, status NominationStatus, entry *PointReason) (*Nomination, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	n, ok := m.store.nominations.get(nominationID)
	if !ok {
		return nil, ErrNotFound
	}
	if n.Status != NominationPending {
		return nil, ErrConditionFailed
	}
	if entry != nil {
		if _, err := m.award(entry); err != nil {
			return nil, err
		}
	}

	n.Status = status
	n.UpdatedAt = now()
	m.store.nominations.put(n.ID, n)
	if p, ok := m.store.persons.get(n.PersonID); ok {
		n.Person = &p
	}
	return &n, nil
}

func (m *MemoryLedgerStorage) Reverse(_ context.Context, originalID string, reversal *PointReason) (*Person, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	original, ok := m.store.pointReasons.get(originalID)
	if !ok {
		return nil, ErrNotFound
	}
	if original.Voided() || original.PointsAdded <= 0 {
		return nil, ErrConditionFailed
	}

	reversal.PersonID = original.PersonID
	reversal.PointsAdded = -abs(original.PointsAdded)
	person, err := m.award(reversal)
	if err != nil {
		return nil, err
	}

	voidedAt, voidedBy := reversal.CreatedAt, reversal.ID
	original.VoidedAt = &voidedAt
	original.VoidedByID = &voidedBy
	m.store.pointReasons.put(original.ID, original)
	return person, nil
}

func (m *MemoryLedgerStorage) Recount(_ context.Context, personID string) (int, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	p, ok := m.store.persons.get(personID)
	if !ok {
		return 0, 0, ErrNotFound
	}
	entries := m.store.pointReasons.list(func(r PointReason) bool { return r.PersonID == personID })
	total := lo.SumBy(entries, func(r PointReason) int { return r.PointsAdded })
	if total != p.Points {
		stored := p.Points
		p.Points = total
		p.UpdatedAt = now()
		m.store.persons.put(p.ID, p)
		return stored, total, nil
	}
	return p.Points, total, nil
}

func (m *MemoryLedgerStorage) DeletePerson(_ context.Context, personID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if !m.store.persons.remove(personID) {
		return ErrNotFound
	}
	for _, n := range m.store.nominations.list(func(n Nomination) bool { return n.PersonID == personID }) {
		for _, v := range m.store.votes.list(func(v Vote) bool { return v.NominationID == n.ID }) {
			m.store.votes.remove(v.ID)
		}
		m.store.nominations.remove(n.ID)
	}
	for _, r := range m.store.pointReasons.list(func(r PointReason) bool { return r.PersonID == personID }) {
		m.store.pointReasons.remove(r.ID)
	}
	return nil
}

// award expects the write lock to be held.
func (m *MemoryLedgerStorage) award(entry *PointReason) (*Person, error) {
	p, ok := m.store.persons.get(entry.PersonID)
	if !ok {
		return nil, ErrNotFound
	}
	entry.prepare()
	p.Points += entry.PointsAdded
	p.UpdatedAt = entry.CreatedAt
	m.store.persons.put(p.ID, p)
	m.store.pointReasons.put(entry.ID, *entry)
	return &p, nil
}

func pointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
