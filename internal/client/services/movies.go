package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/common"
)

// SessionReader exposes the current session.
type SessionReader interface {
	Get() models.Session
}

// MovieService wraps the catalogue endpoints with the local checks that must
// pass before a request is sent. Role checks here only decide whether the
// client bothers to ask; the server enforces them again.
type MovieService interface {
	List(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id string) (models.Movie, error)
	Comments(ctx context.Context, id string) ([]models.Comment, error)
	AddComment(ctx context.Context, id string, text string) ([]models.Comment, error)
	Add(ctx context.Context, draft models.MovieDraft) error
	Update(ctx context.Context, id string, draft models.MovieDraft) error
	Delete(ctx context.Context, id string) error
}

type movieService struct {
	client  client.Client
	session SessionReader
}

func NewMovieService(c client.Client, session SessionReader) MovieService {
	return &movieService{client: c, session: session}
}

func (s *movieService) List(ctx context.Context) ([]models.Movie, error) {
	return s.client.GetMovies(ctx)
}

func (s *movieService) Get(ctx context.Context, id string) (models.Movie, error) {
	return s.client.GetMovie(ctx, id)
}

func (s *movieService) Comments(ctx context.Context, id string) ([]models.Comment, error) {
	return s.client.GetComments(ctx, id)
}

// AddComment posts text as the signed-in user and returns the movie's full
// comment list as stored by the server.
func (s *movieService) AddComment(ctx context.Context, id string, text string) ([]models.Comment, error) {
	userID := s.session.Get().UserID
	if userID == "" {
		return nil, common.ErrNoUser
	}
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyComment
	}
	return s.client.AddComment(ctx, id, models.CommentDraft{UserID: userID, Comment: text})
}

func (s *movieService) Add(ctx context.Context, draft models.MovieDraft) error {
	m, err := s.prepare(draft)
	if err != nil {
		return err
	}
	return s.client.AddMovie(ctx, m)
}

func (s *movieService) Update(ctx context.Context, id string, draft models.MovieDraft) error {
	m, err := s.prepare(draft)
	if err != nil {
		return err
	}
	return s.client.UpdateMovie(ctx, id, m)
}

func (s *movieService) Delete(ctx context.Context, id string) error {
	if !s.session.Get().IsAdmin {
		return common.ErrForbidden
	}
	return s.client.DeleteMovie(ctx, id)
}

func (s *movieService) prepare(draft models.MovieDraft) (models.Movie, error) {
	if !s.session.Get().IsAdmin {
		return models.Movie{}, common.ErrForbidden
	}
	if err := models.Validate(draft); err != nil {
		return models.Movie{}, err
	}
	m, err := draft.ToMovie()
	if err != nil {
		return models.Movie{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return m, nil
}
