package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"postboard/internal/client/api"
	"postboard/internal/client/config"
)

// backend is the API surface the CLI needs. *api.Client satisfies it;
// tests can provide a stub.
type backend interface {
	Register(ctx context.Context, userID string, password []byte) (string, error)
	Authenticate(ctx context.Context, userID string, password []byte) (string, error)
	CreatePost(ctx context.Context, token, title, content string) (*api.Post, error)
	ListPosts(ctx context.Context) ([]api.Post, error)
	GetPost(ctx context.Context, id string) (*api.Post, error)
	DeletePost(ctx context.Context, token, id string) error
	Status(ctx context.Context) error
}

type App struct {
	config   *config.Config
	api      backend
	reader   *bufio.Reader
	out      io.Writer
	token    string
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) requestCtx() (context.Context, context.CancelFunc) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
