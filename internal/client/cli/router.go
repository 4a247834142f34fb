package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/views"
)

// maxRedirects bounds chains like /logout -> /login -> /movies.
const maxRedirects = 4

// redirecter is implemented by views that may send the user elsewhere once
// mounted.
type redirecter interface {
	Redirect() (string, bool)
}

// resolve builds a fresh view for route. Unknown routes yield false.
func (a *App) resolve(route string) (views.View, bool) {
	switch route {
	case views.RouteLogin:
		return views.NewLoginView(a.auth, a.store, a.notify, a.log), true
	case views.RouteRegister:
		return views.NewRegisterView(a.auth, a.notify, a.log), true
	case views.RouteLogout:
		return views.NewLogoutView(a.auth, a.notify, a.log), true
	case views.RouteMovies:
		return views.NewMoviesView(a.movies, a.store, a.notify, a.confirm, a.log), true
	}
	if id, ok := strings.CutPrefix(route, views.RouteMovie); ok && id != "" && !strings.Contains(id, "/") {
		return views.NewMovieDetailsView(id, a.movies, a.log), true
	}
	return nil, false
}

// Navigate leaves the current view and shows the one behind route.
func (a *App) Navigate(ctx context.Context, route string) {
	if a.route != "" && a.route != route {
		a.history = append(a.history, a.route)
	}
	a.visit(ctx, route)
}

// Back returns to the previously shown route.
func (a *App) Back(ctx context.Context) {
	if len(a.history) == 0 {
		fmt.Fprintln(a.out, "Nothing to go back to.")
		return
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.visit(ctx, prev)
}

func (a *App) visit(ctx context.Context, route string) {
	for range maxRedirects {
		if a.current != nil {
			a.current.Unmount()
			a.current = nil
		}
		a.route = route

		v, ok := a.resolve(route)
		if !ok {
			a.render()
			return
		}
		a.current = v
		v.Mount(ctx)

		r, ok := v.(redirecter)
		if !ok {
			break
		}
		next, ok := r.Redirect()
		if !ok || next == route {
			break
		}
		route = next
	}
	a.render()
}

// render prints the navbar and the current view.
func (a *App) render() {
	fmt.Fprintln(a.out)
	a.navbar.Render(a.out)
	if a.current == nil {
		fmt.Fprintln(a.out, "Page not found")
		return
	}
	a.current.Render(a.out)
}
