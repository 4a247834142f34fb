package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
)

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	var resp struct {
		Access  string `json:"access"`
		Message string `json:"message"`
	}
	req := models.Credentials{Email: email, Password: string(password)}

	if err := c.Call(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", &APIError{Kind: KindRejected, Status: http.StatusOK, Message: resp.Message}
	}
	return resp.Access, nil
}

// Details resolves the identity behind the current credential.
func (c *HTTPClient) Details(ctx context.Context) (models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.Call(ctx, http.MethodGet, "/users/details", nil, &resp); err != nil {
		return models.User{}, err
	}
	if resp.User == nil || resp.User.ID == "" {
		return models.User{}, malformed("user details without id")
	}
	return *resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, email string, password []byte) error {
	req := models.Credentials{Email: email, Password: string(password)}
	return c.Call(ctx, http.MethodPost, "/users/register", req, nil)
}

func (c *HTTPClient) GetMovies(ctx context.Context) ([]models.Movie, error) {
	var resp struct {
		Movies []models.Movie `json:"movies"`
	}
	if err := c.Call(ctx, http.MethodGet, "/movies/getMovies", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Movies == nil {
		return nil, malformed("movie list without movies")
	}
	return resp.Movies, nil
}

func (c *HTTPClient) GetMovie(ctx context.Context, id string) (models.Movie, error) {
	var m models.Movie
	if err := c.Call(ctx, http.MethodGet, "/movies/getMovie/"+url.PathEscape(id), nil, &m); err != nil {
		return models.Movie{}, err
	}
	return m, nil
}

func (c *HTTPClient) GetComments(ctx context.Context, id string) ([]models.Comment, error) {
	var resp struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := c.Call(ctx, http.MethodGet, "/movies/getComments/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Comments == nil {
		return []models.Comment{}, nil
	}
	return resp.Comments, nil
}

// AddComment returns the authoritative comment list of the updated movie.
func (c *HTTPClient) AddComment(ctx context.Context, id string, draft models.CommentDraft) ([]models.Comment, error) {
	var resp struct {
		UpdatedMovie *struct {
			Comments []models.Comment `json:"comments"`
		} `json:"updatedMovie"`
	}
	if err := c.Call(ctx, http.MethodPatch, "/movies/addComment/"+url.PathEscape(id), draft, &resp); err != nil {
		return nil, err
	}
	if resp.UpdatedMovie == nil {
		return nil, malformed("addComment answer without updatedMovie")
	}
	if resp.UpdatedMovie.Comments == nil {
		return []models.Comment{}, nil
	}
	return resp.UpdatedMovie.Comments, nil
}

func (c *HTTPClient) AddMovie(ctx context.Context, m models.Movie) error {
	m.ID = ""
	m.Comments = nil
	return c.Call(ctx, http.MethodPost, "/movies/addMovie", m, nil)
}

func (c *HTTPClient) UpdateMovie(ctx context.Context, id string, m models.Movie) error {
	m.ID = id
	m.Comments = nil
	return c.Call(ctx, http.MethodPatch, "/movies/updateMovie/"+url.PathEscape(id), m, nil)
}

func (c *HTTPClient) DeleteMovie(ctx context.Context, id string) error {
	return c.Call(ctx, http.MethodDelete, "/movies/deleteMovie/"+url.PathEscape(id), nil, nil)
}

// Ping reports whether the service host answers at all; any HTTP status
// counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.Call(ctx, http.MethodGet, "/", nil, nil)
	var apiErr *APIError
	if err != nil && errors.As(err, &apiErr) && apiErr.Kind == KindStatus {
		return nil
	}
	return err
}
