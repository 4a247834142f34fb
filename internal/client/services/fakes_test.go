package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for unit tests. Every call is counted.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	LoginToken string
	LoginErr   error
	LastEmail  string
	LastPass   []byte

	DetailsRet models.User
	DetailsErr error

	RegisterErr error

	MoviesRet []models.Movie
	MoviesErr error

	MovieRet models.Movie
	MovieErr error

	CommentsRet []models.Comment
	CommentsErr error

	AddCommentRet  []models.Comment
	AddCommentErr  error
	LastComment    models.CommentDraft
	LastMovie      models.Movie
	LastMovieID    string
	MutationErr    error
	PingErr        error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.hit("Login")
	f.LastEmail = email
	f.LastPass = append([]byte(nil), password...)
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Details(ctx context.Context) (models.User, error) {
	f.hit("Details")
	return f.DetailsRet, f.DetailsErr
}

func (f *fakeClient) Register(ctx context.Context, email string, password []byte) error {
	f.hit("Register")
	f.LastEmail = email
	f.LastPass = append([]byte(nil), password...)
	return f.RegisterErr
}

func (f *fakeClient) GetMovies(ctx context.Context) ([]models.Movie, error) {
	f.hit("GetMovies")
	return f.MoviesRet, f.MoviesErr
}

func (f *fakeClient) GetMovie(ctx context.Context, id string) (models.Movie, error) {
	f.hit("GetMovie")
	return f.MovieRet, f.MovieErr
}

func (f *fakeClient) GetComments(ctx context.Context, id string) ([]models.Comment, error) {
	f.hit("GetComments")
	return f.CommentsRet, f.CommentsErr
}

func (f *fakeClient) AddComment(ctx context.Context, id string, c models.CommentDraft) ([]models.Comment, error) {
	f.hit("AddComment")
	f.LastMovieID = id
	f.LastComment = c
	return f.AddCommentRet, f.AddCommentErr
}

func (f *fakeClient) AddMovie(ctx context.Context, m models.Movie) error {
	f.hit("AddMovie")
	f.LastMovie = m
	return f.MutationErr
}

func (f *fakeClient) UpdateMovie(ctx context.Context, id string, m models.Movie) error {
	f.hit("UpdateMovie")
	f.LastMovieID = id
	f.LastMovie = m
	return f.MutationErr
}

func (f *fakeClient) DeleteMovie(ctx context.Context, id string) error {
	f.hit("DeleteMovie")
	f.LastMovieID = id
	return f.MutationErr
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.hit("Ping")
	return f.PingErr
}

// ---- fake session store ----

type fakeStore struct {
	mu  sync.Mutex
	cur models.Session

	persisted models.Session
	WriteErr  error
	LoadErr   error
}

var _ SessionStore = (*fakeStore)(nil)

func (s *fakeStore) Get() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *fakeStore) Load(ctx context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return models.Session{}, s.LoadErr
	}
	s.cur = s.persisted
	return s.cur, nil
}

func (s *fakeStore) SetCredential(ctx context.Context, token string) error {
	return s.set(models.Session{Token: token})
}

func (s *fakeStore) SetAuthenticated(ctx context.Context, userID string, isAdmin bool, token string) error {
	return s.set(models.Session{Token: token, UserID: userID, IsAdmin: isAdmin})
}

func (s *fakeStore) Clear(ctx context.Context) error {
	return s.set(models.Session{})
}

func (s *fakeStore) set(next models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.persisted = next
	s.cur = next
	return nil
}
