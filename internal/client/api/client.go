// Package api implements the HTTP client for the postboard server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"postboard/internal/common"
)

// Client talks to the postboard REST API. It is safe for concurrent use.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

type credentialPayload struct {
	UserID string `json:"userId"`
	Hash   string `json:"hash"`
}

type tokenPayload struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

// Post mirrors the server's post resource.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusToError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// statusToError maps response statuses onto the shared sentinel errors so
// callers can branch with errors.Is regardless of transport.
func statusToError(resp *http.Response) error {
	var body struct {
		Msg string `json:"msg"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorInvalidInput
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthenticated
	case http.StatusForbidden:
		sentinel = common.ErrorForbidden
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusConflict:
		sentinel = common.ErrorAlreadyExists
	default:
		sentinel = common.ErrorInternal
	}

	if body.Msg != "" {
		return fmt.Errorf("%s: %w", body.Msg, sentinel)
	}
	return sentinel
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, userID string, password []byte) (string, error) {
	var out tokenPayload
	in := credentialPayload{UserID: userID, Hash: string(password)}
	if err := c.do(ctx, http.MethodPost, "/users", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Authenticate exchanges credentials for a token.
func (c *Client) Authenticate(ctx context.Context, userID string, password []byte) (string, error) {
	var out tokenPayload
	in := credentialPayload{UserID: userID, Hash: string(password)}
	if err := c.do(ctx, http.MethodPost, "/authentications", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CreatePost publishes a post as the token's identity.
func (c *Client) CreatePost(ctx context.Context, token, title, content string) (*Post, error) {
	var out struct {
		Msg  string `json:"msg"`
		Post Post   `json:"post"`
	}
	in := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPost, "/posts", token, in, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// ListPosts returns all posts, newest first.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out struct {
		Posts []Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts/"+id, "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// DeletePost removes a post owned by the token's identity.
func (c *Client) DeletePost(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, token, nil, nil)
}

// Status probes server liveness.
func (c *Client) Status(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/status", "", nil, nil)
}
