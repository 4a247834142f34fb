package views

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/moviecat/internal/client/apitest"
	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/client/session"
	"github.com/stretchr/testify/require"
)

// recNotifier records notices.
type recNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *recNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// sessionVar is a SessionReader tests can set directly.
type sessionVar struct {
	mu sync.Mutex
	s  models.Session
}

func (v *sessionVar) Get() models.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.s
}

func (v *sessionVar) Set(s models.Session) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.s = s
}

func (v *sessionVar) Token() string {
	return v.Get().Token
}

// authStack is the real client stack against an in-memory service.
type authStack struct {
	srv   *apitest.Server
	store *session.Store
	auth  services.AuthService
}

func newAuthStack(t *testing.T) *authStack {
	t.Helper()
	srv := apitest.New(t)

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db)
	c, err := client.NewHTTPClient(srv.URL, store.Token)
	require.NoError(t, err)

	return &authStack{srv: srv, store: store, auth: services.NewAuthService(c, store, nil, true)}
}

// movieStack serves movies to a session the test controls.
type movieStack struct {
	srv     *apitest.Server
	session *sessionVar
	movies  services.MovieService
}

func newMovieStack(t *testing.T) *movieStack {
	t.Helper()
	srv := apitest.New(t)
	sess := &sessionVar{}

	c, err := client.NewHTTPClient(srv.URL, sess.Token)
	require.NoError(t, err)

	return &movieStack{srv: srv, session: sess, movies: services.NewMovieService(c, sess)}
}

// signIn registers a user on the server and puts its identity in the session.
func (m *movieStack) signIn(email string, isAdmin bool) string {
	id := m.srv.AddUser(email, "password1", isAdmin)
	m.session.Set(models.Session{Token: m.srv.Token(email), UserID: id, IsAdmin: isAdmin})
	return id
}
