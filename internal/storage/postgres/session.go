package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ireporter-ke/ireporter/internal/domain"
)

// SessionStore implements storage.SessionStore using PostgreSQL.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a new session store.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

// Add records a session. The unique index on account_id keeps one session
// per account.
func (s *SessionStore) Add(ctx context.Context, session domain.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (account_id, email)
		VALUES ($1, $2)`,
		session.ID,
		session.Email,
	)
	return mapError(err)
}

// Remove deletes the session for the given account id.
func (s *SessionStore) Remove(ctx context.Context, accountID int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE account_id = $1`, accountID)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all sessions in login order.
func (s *SessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.pool.Query(ctx, `SELECT account_id, email FROM sessions ORDER BY seq`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.ID, &session.Email); err != nil {
			return nil, mapError(err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
