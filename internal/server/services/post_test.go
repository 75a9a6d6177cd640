package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/common"
	"postboard/internal/server/auth"
)

func registerAndLogin(t *testing.T, us *UserService, userID, credential string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := us.Register(ctx, userID, credential); err != nil {
		t.Fatalf("Register(%q) error: %v", userID, err)
	}
	token, err := us.Authenticate(ctx, userID, credential)
	if err != nil {
		t.Fatalf("Authenticate(%q) error: %v", userID, err)
	}
	return token
}

func TestPostCreate_StampsAuthorFromToken(t *testing.T) {
	us, ps, _ := newTestStack(t)
	ctx := context.Background()

	token := registerAndLogin(t, us, "asdf", "asdf")

	post, err := ps.Create(ctx, token, "first post", "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.Author != "asdf" {
		t.Fatalf("author mismatch: got %q want %q", post.Author, "asdf")
	}
	if post.ID == "" {
		t.Fatalf("post has no id")
	}
}

func TestPostCreate_RequiresValidToken(t *testing.T) {
	_, ps, _ := newTestStack(t)

	_, err := ps.Create(context.Background(), "garbage", "title", "body")
	if !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("expected common.ErrorUnauthenticated, got %v", err)
	}
}

func TestPostCreate_ExpiredToken(t *testing.T) {
	us, _, rm := newTestStack(t)
	ctx := context.Background()
	if _, err := us.Register(ctx, "asdf", "asdf"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	expired := auth.NewTokenService([]byte("test-secret"), -1*time.Second)
	tok, err := expired.Issue("asdf")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	ps := NewPostService(nil, rm, tokens, auth.NewGate(tokens))
	_, err = ps.Create(ctx, tok, "title", "body")
	if !errors.Is(err, common.ErrorUnauthenticated) {
		t.Fatalf("expected common.ErrorUnauthenticated, got %v", err)
	}
}

func TestPostCreate_RequiresTitle(t *testing.T) {
	us, ps, _ := newTestStack(t)

	token := registerAndLogin(t, us, "asdf", "asdf")

	_, err := ps.Create(context.Background(), token, "", "body")
	if !errors.Is(err, common.ErrorInvalidInput) {
		t.Fatalf("expected common.ErrorInvalidInput, got %v", err)
	}
}

func TestPostReads_Unauthenticated(t *testing.T) {
	us, ps, _ := newTestStack(t)
	ctx := context.Background()

	token := registerAndLogin(t, us, "asdf", "asdf")
	post, err := ps.Create(ctx, token, "readable", "by anyone")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// No token involved in either read.
	got, err := ps.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "readable" {
		t.Fatalf("unexpected post: %+v", got)
	}

	all, err := ps.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 post, got %d", len(all))
	}
}

func TestPostUpdate_OwnershipEndToEnd(t *testing.T) {
	us, ps, _ := newTestStack(t)
	ctx := context.Background()

	ownerToken := registerAndLogin(t, us, "asdf", "asdf")
	otherToken := registerAndLogin(t, us, "fdsa", "fdsa")

	post, err := ps.Create(ctx, ownerToken, "mine", "original")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Wrong owner: forbidden, post untouched.
	err = ps.Update(ctx, otherToken, post.ID, "stolen", "rewritten")
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected common.ErrorForbidden, got %v", err)
	}
	unchanged, err := ps.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if unchanged.Title != "mine" {
		t.Fatalf("forbidden update mutated the post: %+v", unchanged)
	}

	// Recorded owner: allowed.
	if err := ps.Update(ctx, ownerToken, post.ID, "mine still", "edited"); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	updated, err := ps.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if updated.Title != "mine still" || updated.Content != "edited" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestPostDelete_OwnershipEndToEnd(t *testing.T) {
	us, ps, _ := newTestStack(t)
	ctx := context.Background()

	ownerToken := registerAndLogin(t, us, "asdf", "asdf")
	otherToken := registerAndLogin(t, us, "fdsa", "fdsa")

	post, err := ps.Create(ctx, ownerToken, "mine", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := ps.Delete(ctx, otherToken, post.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected common.ErrorForbidden, got %v", err)
	}
	if err := ps.Delete(ctx, ownerToken, post.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := ps.Get(ctx, post.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound after delete, got %v", err)
	}
}

func TestPostUpdate_MissingPost(t *testing.T) {
	us, ps, _ := newTestStack(t)
	ctx := context.Background()

	token := registerAndLogin(t, us, "asdf", "asdf")

	err := ps.Update(ctx, token, "no-such-post", "t", "c")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
