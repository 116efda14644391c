// Package memory implements the storage interfaces with in-process ordered
// collections. This is the live store: nothing survives a restart.
//
// Each collection guards its entries with one mutex whose scope covers the
// whole mutate sequence, so id assignment and insertion are atomic and a
// concurrent find/delete pair cannot interleave.
package memory

import (
	"context"
	"sync"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/storage"
)

// New returns all three collections backed by process memory.
func New() *storage.Repositories {
	return &storage.Repositories{
		Reports:  NewReportRepository(),
		Accounts: NewAccountRepository(),
		Sessions: NewSessionStore(),
	}
}

// ReportRepository is the in-memory keyed sequence of reports.
type ReportRepository struct {
	mu      sync.Mutex
	entries []domain.Report
	// nextID grows independently of len(entries) so deleted ids are never
	// reused. The system this replaces derived ids from the collection
	// length, which silently recycled ids after a delete; that is fixed
	// here deliberately.
	nextID int
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{nextID: 1}
}

func (r *ReportRepository) Insert(ctx context.Context, report *domain.Report) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *report)
	return report.ID, nil
}

func (r *ReportRepository) Find(ctx context.Context, id int) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Linear scan in insertion order; the first match wins.
	for i := range r.entries {
		if r.entries[i].ID == id {
			found := r.entries[i]
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == report.ID {
			r.entries[i] = *report
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ReportRepository) Mutate(ctx context.Context, id int, fn func(*domain.Report) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			// fn works on a copy so a failed mutation cannot leave a
			// half-applied record behind.
			updated := r.entries[i]
			if err := fn(&updated); err != nil {
				return err
			}
			r.entries[i] = updated
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ReportRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ReportRepository) List(ctx context.Context) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Report, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// AccountRepository is the in-memory account collection, keyed by email.
type AccountRepository struct {
	mu      sync.Mutex
	entries []domain.Account
	nextID  int
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{nextID: 1}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Email == account.Email {
			return 0, domain.ErrAlreadyExists
		}
	}

	account.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *account)
	return account.ID, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Email == email {
			found := r.entries[i]
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SessionStore is the in-memory sequence of logged-in accounts.
type SessionStore struct {
	mu      sync.Mutex
	entries []domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Add(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == session.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.entries = append(s.entries, session)
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, accountID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == accountID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *SessionStore) List(ctx context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Session, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
