package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ireporter-ke/ireporter/internal/domain"
)

// AccountRepository implements storage.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Insert stores a new account. The unique index on email enforces the
// one-account-per-email invariant at the database level as well.
func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (int, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password)
		VALUES ($1, $2)
		RETURNING id`,
		account.Email,
		account.Password,
	)

	var id int
	if err := row.Scan(&id); err != nil {
		return 0, mapError(err)
	}
	account.ID = id
	return id, nil
}

// FindByEmail retrieves an account by its email key.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password
		FROM accounts WHERE email = $1`, email)

	var account domain.Account
	if err := row.Scan(&account.ID, &account.Email, &account.Password); err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}
