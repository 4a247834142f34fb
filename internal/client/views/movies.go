package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

const deletePrompt = "Are you sure you want to delete this movie?"

// MoviesView lists the catalogue. Mutations are pessimistic: the list only
// changes by re-fetching it after the server confirmed a change.
type MoviesView struct {
	lifecycle

	movies  services.MovieService
	session SessionReader
	notify  Notifier
	confirm ConfirmFunc
	log     logging.Logger

	mu   sync.Mutex
	list []models.Movie
}

func NewMoviesView(movies services.MovieService, session SessionReader, notify Notifier, confirm ConfirmFunc, log logging.Logger) *MoviesView {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &MoviesView{movies: movies, session: session, notify: notify, confirm: confirm, log: orDiscard(log)}
}

// Mount fetches the collection.
func (v *MoviesView) Mount(ctx context.Context) {
	v.mount(ctx)
	_ = v.Refresh(ctx)
}

// Refresh re-fetches the collection. A failed fetch keeps the current list.
func (v *MoviesView) Refresh(ctx context.Context) error {
	ctx, done, err := v.bind(ctx)
	if err != nil {
		return err
	}
	defer done()

	list, err := v.movies.List(ctx)
	if !v.Mounted() {
		return nil
	}
	if err != nil {
		v.log.Warn(ctx, "error fetching movies", "error", err)
		return nil
	}

	v.mu.Lock()
	v.list = list
	v.mu.Unlock()
	return nil
}

// Movies returns the fetched collection, whether or not it is shown.
func (v *MoviesView) Movies() []models.Movie {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Movie(nil), v.list...)
}

// Find returns a fetched movie by id.
func (v *MoviesView) Find(id string) (models.Movie, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, m := range v.list {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Visible returns the cards the current user may see.
func (v *MoviesView) Visible() []models.Movie {
	if !v.session.Get().Authenticated() {
		return nil
	}
	return v.Movies()
}

// ShowAdminControls reports whether add/edit/delete are offered.
func (v *MoviesView) ShowAdminControls() bool {
	s := v.session.Get()
	return s.Authenticated() && s.IsAdmin
}

// Add reports whether the server stored the movie.
func (v *MoviesView) Add(ctx context.Context, draft models.MovieDraft) bool {
	return v.mutate(ctx, "add", "added", func(ctx context.Context) error {
		return v.movies.Add(ctx, draft)
	})
}

// Update reports whether the server stored the change.
func (v *MoviesView) Update(ctx context.Context, id string, draft models.MovieDraft) bool {
	return v.mutate(ctx, "update", "updated", func(ctx context.Context) error {
		return v.movies.Update(ctx, id, draft)
	})
}

// Delete asks for confirmation first and reports whether the movie is gone.
func (v *MoviesView) Delete(ctx context.Context, id string) bool {
	if !v.session.Get().IsAdmin {
		v.notify.Error("Access Denied: Only admins can delete movies.")
		return false
	}
	if !v.confirm(deletePrompt) {
		return false
	}
	return v.mutate(ctx, "delete", "deleted", func(ctx context.Context) error {
		return v.movies.Delete(ctx, id)
	})
}

func (v *MoviesView) mutate(ctx context.Context, verb, past string, call func(context.Context) error) bool {
	ctx, done, err := v.bind(ctx)
	if err != nil {
		return false
	}
	defer done()

	err = call(ctx)
	if !v.Mounted() {
		return false
	}

	switch {
	case err == nil:
	case errors.Is(err, common.ErrForbidden):
		v.notify.Error(fmt.Sprintf("Access Denied: Only admins can %s movies.", verb))
		return false
	case errors.Is(err, common.ErrValidation):
		v.notify.Error(validationNotice(err))
		return false
	default:
		v.log.Error(ctx, "movie "+verb+" failed", "error", err)
		v.notify.Error(fmt.Sprintf("Failed to %s movie", verb))
		return false
	}

	v.notify.Success(fmt.Sprintf("Movie %s successfully!", past))
	_ = v.Refresh(ctx)
	return true
}

func (v *MoviesView) Render(w io.Writer) {
	fmt.Fprintln(w, "Movie Catalogue")

	if !v.session.Get().Authenticated() {
		fmt.Fprintln(w, "Please log in to view movies.")
		return
	}

	admin := v.ShowAdminControls()
	if admin {
		fmt.Fprintln(w, "[add]")
	}

	list := v.Movies()
	if len(list) == 0 {
		fmt.Fprintln(w, "No movies available")
		return
	}
	for _, m := range list {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", m.Title)
		fmt.Fprintf(w, "  %s - %d\n", m.Genre, m.Year)
		fmt.Fprintf(w, "  [view %s]", MovieRoute(m.ID))
		if admin {
			fmt.Fprintf(w, " [edit %s] [delete %s]", m.ID, m.ID)
		}
		fmt.Fprintln(w)
	}
}
