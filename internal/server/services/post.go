package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"postboard/internal/common"
	"postboard/internal/server/auth"
	"postboard/internal/server/models"
	"postboard/internal/server/repositories/repomanager"
)

// PostService implements post CRUD. Reads are unauthenticated; every
// mutation of an existing post goes through the authorization gate against
// the recorded author. Creation verifies the token directly, since there is
// no pre-existing owner to compare against, and stamps the author from the
// verified caller.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	gate        *auth.Gate
}

// NewPostService constructs a PostService from its collaborators.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, gate *auth.Gate) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		gate:        gate,
	}
}

// Create verifies token, stamps the caller as author and stores the post.
func (s *PostService) Create(ctx context.Context, token, title, content string) (*models.Post, error) {
	author, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenVerification) {
			return nil, err
		}
		return nil, common.ErrorUnauthenticated
	}

	if title == "" {
		return nil, common.ErrorInvalidInput
	}

	post := &models.Post{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Author:  author,
	}
	if err := s.repomanager.Posts(s.db).Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// Get returns a single post. No authentication required.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, postID)
}

// List returns all posts. No authentication required.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx)
}

// Update replaces title and content of the post. The caller must present a
// token for the recorded author.
func (s *PostService) Update(ctx context.Context, token, postID, title, content string) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if _, err := s.gate.Authorize(token, post.Author); err != nil {
		return err
	}

	if title == "" {
		return common.ErrorInvalidInput
	}

	matched, err := repo.Update(ctx, postID, title, content)
	if err != nil {
		return common.ErrorInternal
	}
	if matched == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the post. The caller must present a token for the recorded
// author.
func (s *PostService) Delete(ctx context.Context, token, postID string) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if _, err := s.gate.Authorize(token, post.Author); err != nil {
		return err
	}

	deleted, err := repo.Delete(ctx, postID)
	if err != nil {
		return common.ErrorInternal
	}
	if deleted == 0 {
		return common.ErrorNotFound
	}
	return nil
}
