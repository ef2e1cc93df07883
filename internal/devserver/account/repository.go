package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no account matches the login code.
var ErrNotFound = errors.New("account not found")

// Repository persists dev-server accounts.
type Repository interface {
	Create(ctx context.Context, acc Account) error
	FindByCode(ctx context.Context, code string) (Account, error)
	UpdateDevice(ctx context.Context, id, deviceID string) error
}

// PostgresRepository implements Repository using PostgreSQL, for shared
// development environments.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) error {
	accID, err := uuid.Parse(acc.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, code, secret_hash, device_id, created_at)
        VALUES ($1, $2, $3, $4, $5)`, accID, acc.Code, acc.SecretHash, acc.DeviceID, acc.CreatedAt.UTC())
	return err
}

// FindByCode fetches an account by its login code.
func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, secret_hash, device_id, created_at FROM accounts WHERE code = $1`, code)
	var (
		id        uuid.UUID
		createdAt time.Time
		acc       Account
	)
	if err := row.Scan(&id, &acc.Code, &acc.SecretHash, &acc.DeviceID, &createdAt); err != nil {
		return Account{}, ErrNotFound
	}
	acc.ID = id.String()
	acc.CreatedAt = createdAt.UTC()
	return acc, nil
}

// UpdateDevice stores the account's bound device identifier.
func (r *PostgresRepository) UpdateDevice(ctx context.Context, id, deviceID string) error {
	accID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET device_id = $1 WHERE id = $2`, deviceID, accID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
