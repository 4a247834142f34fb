package client

import (
	"context"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
)

// Client is the typed contract of the remote movie service.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Details(ctx context.Context) (models.User, error)
	Register(ctx context.Context, email string, password []byte) error
	GetMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (models.Movie, error)
	GetComments(ctx context.Context, id string) ([]models.Comment, error)
	AddComment(ctx context.Context, id string, c models.CommentDraft) ([]models.Comment, error)
	AddMovie(ctx context.Context, m models.Movie) error
	UpdateMovie(ctx context.Context, id string, m models.Movie) error
	DeleteMovie(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// TokenSource yields the current credential. It is consulted on every
// request, so a logout between two calls is observed by the second one.
type TokenSource func() string
