package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginSucceeded
	LoginFailed
)

func (s LoginState) String() string {
	switch s {
	case LoginSubmitting:
		return "submitting"
	case LoginSucceeded:
		return "succeeded"
	case LoginFailed:
		return "failed"
	default:
		return "idle"
	}
}

var ErrSubmitDisabled = errors.New("email and password are required")

// LoginView is the sign-in form. It never navigates by itself: once the
// session reports a user, Redirect points away from the form.
type LoginView struct {
	lifecycle

	auth    services.AuthService
	session SessionReader
	notify  Notifier
	log     logging.Logger

	email    string
	password string
	state    LoginState
}

func NewLoginView(auth services.AuthService, session SessionReader, notify Notifier, log logging.Logger) *LoginView {
	return &LoginView{auth: auth, session: session, notify: notify, log: orDiscard(log)}
}

func (v *LoginView) Mount(ctx context.Context) {
	v.mount(ctx)
	v.state = LoginIdle
}

func (v *LoginView) SetEmail(s string)    { v.email = s }
func (v *LoginView) SetPassword(s string) { v.password = s }
func (v *LoginView) Email() string        { return v.email }
func (v *LoginView) State() LoginState    { return v.state }

// CanSubmit reports whether both fields hold something. Whitespace counts.
func (v *LoginView) CanSubmit() bool {
	return v.email != "" && v.password != ""
}

// Redirect returns the route to leave for when a user is signed in.
func (v *LoginView) Redirect() (string, bool) {
	if v.session.Get().Authenticated() {
		return RouteMovies, true
	}
	return "", false
}

// Submit sends the form. Only local refusals are returned; the outcome of
// the request is reported through the notifier and State.
func (v *LoginView) Submit(ctx context.Context) error {
	if !v.CanSubmit() {
		return ErrSubmitDisabled
	}
	ctx, done, err := v.bind(ctx)
	if err != nil {
		return err
	}
	defer done()

	v.state = LoginSubmitting
	_, err = v.auth.Login(ctx, v.email, []byte(v.password))
	if !v.Mounted() {
		return nil
	}

	if err != nil {
		v.state = LoginFailed
		switch {
		case errors.Is(err, services.ErrIncorrectCredentials):
			v.notify.Error("Incorrect Credentials. Try Again")
		case errors.Is(err, services.ErrUserNotFound):
			v.notify.Error("User Not Found. Try Again.")
		default:
			v.log.Error(ctx, "login failed", "error", err)
			v.notify.Error("An unexpected error occurred.")
		}
		return nil
	}

	v.state = LoginSucceeded
	v.email, v.password = "", ""
	v.notify.Success("Successful Login")
	return nil
}

func (v *LoginView) Render(w io.Writer) {
	fmt.Fprintln(w, "Login")
	fmt.Fprintf(w, "  Email address: %s\n", v.email)
	fmt.Fprintf(w, "  Password:      %s\n", strings.Repeat("*", len(v.password)))
	if v.CanSubmit() {
		fmt.Fprintln(w, "  [login]")
	} else {
		fmt.Fprintln(w, "  [login] (disabled)")
	}
}
