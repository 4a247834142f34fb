// Package views holds the screen controllers of the moviecat client. Each
// view owns its local state, talks to the services, reports outcomes through
// a Notifier and renders itself as text.
//
// A view is live between Mount and Unmount. Requests it issues are bound to
// that window: unmounting cancels them and any answer that still arrives is
// dropped instead of being applied to a view nobody shows.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

// Routes known to the client.
const (
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteRegister = "/register"
	RouteMovies   = "/movies"
	RouteMovie    = "/movies/getMovie/"
)

// MovieRoute is the detail route of a movie.
func MovieRoute(id string) string {
	return RouteMovie + id
}

var ErrNotMounted = errors.New("view is not mounted")

// View is the lifecycle every screen shares.
type View interface {
	Mount(ctx context.Context)
	Unmount()
	Render(w io.Writer)
}

// SessionReader exposes the current session.
type SessionReader interface {
	Get() models.Session
}

// Notifier shows short outcome messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// WriterNotifier prints notices on their own line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Success(msg string) {
	fmt.Fprintf(n.W, "[ok] %s\n", msg)
}

func (n WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.W, "[error] %s\n", msg)
}

// lifecycle tracks whether a view is mounted.
type lifecycle struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func (l *lifecycle) mount(parent context.Context) context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.ctx, l.cancel = context.WithCancel(parent)
	return l.ctx
}

// Unmount cancels everything the view still has in flight.
func (l *lifecycle) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

// Mounted reports whether the view is live.
func (l *lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx != nil && l.ctx.Err() == nil
}

// bind derives a request context from parent that is also cancelled when the
// view unmounts.
func (l *lifecycle) bind(parent context.Context) (context.Context, context.CancelFunc, error) {
	l.mu.Lock()
	view := l.ctx
	l.mu.Unlock()

	if view == nil || view.Err() != nil {
		return nil, nil, ErrNotMounted
	}

	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(view, cancel)
	return ctx, func() {
		stop()
		cancel()
	}, nil
}

func orDiscard(l logging.Logger) logging.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l
}
