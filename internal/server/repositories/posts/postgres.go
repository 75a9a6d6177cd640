// Package posts provides a PostgreSQL-backed repository for post storage.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// Create inserts a new post with its author already stamped.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Content, post.Author); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the post with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT id, title, content, author, created_at FROM posts
		WHERE id = $1
	`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Title, &post.Content, &post.Author, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// List returns all posts, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT id, title, content, author, created_at FROM posts
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		var item models.Post
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Author, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update replaces title and content of the post with the given id and
// returns the number of matched rows.
func (r *PostgresRepository) Update(ctx context.Context, id, title, content string) (int64, error) {
	query := `
		UPDATE posts SET title = $2, content = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, title, content)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Delete removes the post with the given id and returns the number of
// deleted rows.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `
		DELETE FROM posts
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
