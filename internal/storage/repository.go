// Package storage defines the repository interfaces for data persistence.
//
// These interfaces keep the business logic independent of the storage
// implementation. The live store is an in-memory keyed sequence whose
// lifetime equals the process's; the PostgreSQL adapter implements the same
// contract for deployments that want durability.
//
// Contract notes shared by all implementations:
//   - Collections preserve insertion order; list and scan operations walk
//     entries oldest first.
//   - Ids are assigned by the collection at insertion, from a monotonically
//     increasing counter. An id is never reused, even after deletions.
//   - Every mutating operation runs under a single exclusive-access scope so
//     two concurrent inserts can never observe the same id.
package storage

import (
	"context"

	"github.com/ireporter-ke/ireporter/internal/domain"
)

// ReportRepository defines the operations for report persistence.
type ReportRepository interface {
	// Insert stores a fully validated report, assigns its id and returns it.
	Insert(ctx context.Context, report *domain.Report) (int, error)

	// Find retrieves a report by id. When duplicate keys exist the first
	// match in insertion order wins. Returns ErrNotFound if absent.
	Find(ctx context.Context, id int) (*domain.Report, error)

	// Update overwrites the stored record for report.ID.
	// Returns ErrNotFound if absent.
	Update(ctx context.Context, report *domain.Report) error

	// Mutate runs fn against the stored record for id and persists the
	// result, all inside one exclusive-access scope, so a concurrent
	// read-modify-write can never lose an acknowledged change. When fn
	// returns an error the record is left untouched and that error is
	// returned verbatim. Returns ErrNotFound if absent.
	Mutate(ctx context.Context, id int, fn func(*domain.Report) error) error

	// Delete removes the entry entirely. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int) error

	// List returns all reports in insertion order.
	List(ctx context.Context) ([]domain.Report, error)
}

// AccountRepository defines the operations for account persistence.
// Accounts are keyed by email; there is no update or delete.
type AccountRepository interface {
	// Insert stores a new account, assigns its id and returns it.
	// Returns ErrAlreadyExists if the email is taken.
	Insert(ctx context.Context, account *domain.Account) (int, error)

	// FindByEmail retrieves an account. Returns ErrNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// SessionStore tracks which accounts are currently logged in.
type SessionStore interface {
	// Add records a session. Returns ErrAlreadyExists if the account
	// already has one; an account holds at most one session entry.
	Add(ctx context.Context, session domain.Session) error

	// Remove deletes the session for the given account id.
	// Returns ErrNotFound if the account is not logged in.
	Remove(ctx context.Context, accountID int) error

	// List returns all sessions in login order.
	List(ctx context.Context) ([]domain.Session, error)
}

// Repositories bundles all repositories together.
// This makes it easy to pass around and inject dependencies.
type Repositories struct {
	Reports  ReportRepository
	Accounts AccountRepository
	Sessions SessionStore
}
