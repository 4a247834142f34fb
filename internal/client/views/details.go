package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/dmitrijs2005/moviecat/internal/logging"
	"golang.org/x/sync/errgroup"
)

// MovieDetailsView shows one movie and its comments. The movie and the
// comments are fetched concurrently into separate slots; only a failed movie
// fetch is an error of the view.
type MovieDetailsView struct {
	lifecycle

	id     string
	movies services.MovieService
	log    logging.Logger

	mu         sync.Mutex
	loading    bool
	movie      *models.Movie
	err        string
	comments   []models.Comment
	commentErr string
	draft      string
}

func NewMovieDetailsView(id string, movies services.MovieService, log logging.Logger) *MovieDetailsView {
	return &MovieDetailsView{id: id, movies: movies, log: orDiscard(log), loading: true}
}

func (v *MovieDetailsView) ID() string { return v.id }

// Mount loads the movie and its comments and returns once both requests
// finished or the view was unmounted.
func (v *MovieDetailsView) Mount(ctx context.Context) {
	viewCtx := v.mount(ctx)

	v.mu.Lock()
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		v.loadMovie(viewCtx)
		return nil
	})
	g.Go(func() error {
		v.loadComments(viewCtx)
		return nil
	})
	_ = g.Wait()
}

func (v *MovieDetailsView) loadMovie(ctx context.Context) {
	m, err := v.movies.Get(ctx, v.id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.Mounted() {
		return
	}
	v.loading = false
	if err != nil {
		v.err = failureText("Failed to fetch movie details.", err)
		return
	}
	v.movie = &m
}

func (v *MovieDetailsView) loadComments(ctx context.Context) {
	cs, err := v.movies.Comments(ctx, v.id)
	if err != nil {
		v.log.Warn(ctx, "error fetching comments", "movie_id", v.id, "error", err)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.Mounted() {
		return
	}
	v.comments = cs
}

func (v *MovieDetailsView) SetDraft(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = s
}

// AddComment posts the draft. On success the comment list is replaced by
// the one the server returned.
func (v *MovieDetailsView) AddComment(ctx context.Context) bool {
	ctx, done, err := v.bind(ctx)
	if err != nil {
		return false
	}
	defer done()

	v.mu.Lock()
	v.commentErr = ""
	text := v.draft
	v.mu.Unlock()

	cs, err := v.movies.AddComment(ctx, v.id, text)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.Mounted() {
		return false
	}

	switch {
	case err == nil:
		v.comments = cs
		v.draft = ""
		return true
	case errors.Is(err, common.ErrNoUser):
		v.commentErr = "You must be logged in to add comments."
	case errors.Is(err, common.ErrEmptyComment):
		v.commentErr = "Comment cannot be empty."
	default:
		v.log.Warn(ctx, "error adding comment", "movie_id", v.id, "error", err)
		v.commentErr = failureText("Failed to add comment.", err)
	}
	return false
}

// Snapshot is a copy of the view state.
type Snapshot struct {
	Loading    bool
	Movie      *models.Movie
	Err        string
	Comments   []models.Comment
	CommentErr string
	Draft      string
}

func (v *MovieDetailsView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Snapshot{
		Loading:    v.loading,
		Err:        v.err,
		Comments:   append([]models.Comment(nil), v.comments...),
		CommentErr: v.commentErr,
		Draft:      v.draft,
	}
	if v.movie != nil {
		m := *v.movie
		s.Movie = &m
	}
	return s
}

func (v *MovieDetailsView) Render(w io.Writer) {
	s := v.Snapshot()

	if s.Loading {
		fmt.Fprintln(w, "Loading movie details...")
		return
	}
	if s.Err != "" {
		fmt.Fprintln(w, s.Err)
		return
	}

	if s.Movie != nil {
		fmt.Fprintln(w, s.Movie.Title)
		fmt.Fprintf(w, "  Genre: %s\n", s.Movie.Genre)
		fmt.Fprintf(w, "  Director: %s\n", s.Movie.Director)
		fmt.Fprintf(w, "  Release Year: %d\n", s.Movie.Year)
		fmt.Fprintf(w, "  Description: %s\n", s.Movie.Description)
	} else {
		fmt.Fprintln(w, "Movie details are loading...")
	}
	fmt.Fprintln(w, "[back]")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Comments")
	if len(s.Comments) == 0 {
		fmt.Fprintln(w, "No comments available")
	}
	for _, c := range s.Comments {
		fmt.Fprintf(w, "  - %s\n", c.Text())
	}
	if s.CommentErr != "" {
		fmt.Fprintf(w, "[error] %s\n", s.CommentErr)
	}
	fmt.Fprintln(w, "[comment]")
}

// failureText formats a request failure the way the detail screen shows it.
func failureText(prefix string, err error) string {
	if code := client.StatusCode(err); code != 0 {
		return fmt.Sprintf("%s Status: %d", prefix, code)
	}
	return prefix
}
