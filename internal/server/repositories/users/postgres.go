// Package users provides a PostgreSQL-backed repository for identity
// records: user id, derived secret and salt.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"postboard/internal/common"
	"postboard/internal/dbx"
	"postboard/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new identity record. A unique violation on user_id is
// reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, hash, salt)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, user.UserID, user.Hash, user.Salt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByUserID returns the full identity record for userID, or
// common.ErrorNotFound if no such row exists.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT user_id, hash, salt, created_at FROM users
		WHERE user_id = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&user.UserID, &user.Hash, &user.Salt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// List returns every user, identity and creation time only. Secrets stay in
// the database.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT user_id, created_at FROM users
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.UserID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Exists reports whether a row for userID is present.
func (r *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// UpdateCredentials replaces hash and salt together in one statement, so a
// password change can never leave a secret paired with a stale salt.
// Returns the number of matched rows.
func (r *PostgresRepository) UpdateCredentials(ctx context.Context, userID, hash, salt string) (int64, error) {
	query := `
		UPDATE users SET hash = $2, salt = $3
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, hash, salt)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Delete removes the identity record for userID and returns the number of
// deleted rows.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) (int64, error) {
	query := `
		DELETE FROM users
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
