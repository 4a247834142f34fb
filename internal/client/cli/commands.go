package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/views"
	"github.com/dmitrijs2005/moviecat/internal/common"
)

var errWrongPage = errors.New("command not available on this page")

// Login shows the login form, reads the credentials and submits them. A
// signed in user is sent on to the catalogue.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(ctx, views.RouteLogin)
	v, ok := a.current.(*views.LoginView)
	if !ok {
		return nil
	}

	email, err := GetCredentialText(a.reader, "Email address", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	v.SetEmail(email)
	v.SetPassword(string(pw))
	common.WipeByteArray(pw)

	if err := v.Submit(ctx); err != nil {
		if errors.Is(err, views.ErrSubmitDisabled) {
			fmt.Fprintln(a.out, "Email and password are required.")
		}
		return err
	}

	if next, ok := v.Redirect(); ok {
		a.Navigate(ctx, next)
		return nil
	}
	a.render()
	return nil
}

// Register shows the registration form and submits it.
func (a *App) Register(ctx context.Context) error {
	a.Navigate(ctx, views.RouteRegister)
	v, ok := a.current.(*views.RegisterView)
	if !ok {
		return nil
	}

	email, err := GetCredentialText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, "Confirm ")
	confirm, err := getPassword(a.out)
	if err != nil {
		common.WipeByteArray(pw)
		return err
	}
	v.SetEmail(email)
	v.SetPassword(string(pw))
	v.SetConfirmPassword(string(confirm))
	common.WipeByteArray(pw)
	common.WipeByteArray(confirm)

	if err := v.Submit(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

// Logout visits the logout route, which signs out and lands on the login form.
func (a *App) Logout(ctx context.Context) error {
	a.Navigate(ctx, views.RouteLogout)
	return nil
}

func (a *App) moviesView() (*views.MoviesView, error) {
	v, ok := a.current.(*views.MoviesView)
	if !ok {
		fmt.Fprintf(a.out, "Open %s first.\n", views.RouteMovies)
		return nil, errWrongPage
	}
	return v, nil
}

// Add reads a new movie and submits it.
func (a *App) Add(ctx context.Context) error {
	v, err := a.moviesView()
	if err != nil {
		return err
	}

	var draft models.MovieDraft
	if v.ShowAdminControls() {
		fmt.Fprintln(a.out, "Add a New Movie")
		if draft, err = readDraft(a.reader, a.out, draft); err != nil {
			return err
		}
	}
	if v.Add(ctx, draft) {
		a.render()
	}
	return nil
}

// Edit reads changes to a listed movie and submits them.
func (a *App) Edit(ctx context.Context, id string) error {
	v, err := a.moviesView()
	if err != nil {
		return err
	}

	var draft models.MovieDraft
	if v.ShowAdminControls() {
		m, ok := v.Find(id)
		if !ok {
			fmt.Fprintln(a.out, "Movie not found")
			return nil
		}
		fmt.Fprintln(a.out, "Edit Movie")
		if draft, err = readDraft(a.reader, a.out, models.DraftFromMovie(m)); err != nil {
			return err
		}
	}
	if v.Update(ctx, id, draft) {
		a.render()
	}
	return nil
}

// Delete removes a listed movie after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	v, err := a.moviesView()
	if err != nil {
		return err
	}
	if v.Delete(ctx, id) {
		a.render()
	}
	return nil
}

// Comment posts a comment on the movie being shown.
func (a *App) Comment(ctx context.Context) error {
	v, ok := a.current.(*views.MovieDetailsView)
	if !ok {
		fmt.Fprintln(a.out, "Open a movie first.")
		return errWrongPage
	}

	text, err := GetSimpleText(a.reader, "Add a comment", a.out)
	if err != nil {
		return err
	}
	v.SetDraft(text)
	v.AddComment(ctx)
	a.render()
	return nil
}

// Refresh reloads whatever the current view shows.
func (a *App) Refresh(ctx context.Context) error {
	switch v := a.current.(type) {
	case *views.MoviesView:
		if err := v.Refresh(ctx); err != nil {
			return err
		}
	case *views.MovieDetailsView:
		v.Mount(ctx)
	}
	a.render()
	return nil
}

// confirm asks a yes/no question on the terminal. Anything but y or yes is no.
func (a *App) confirm(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
