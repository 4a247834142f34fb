package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

type RegisterView struct {
	lifecycle

	auth   services.AuthService
	notify Notifier
	log    logging.Logger

	email    string
	password string
	confirm  string
}

func NewRegisterView(auth services.AuthService, notify Notifier, log logging.Logger) *RegisterView {
	return &RegisterView{auth: auth, notify: notify, log: orDiscard(log)}
}

func (v *RegisterView) Mount(ctx context.Context) {
	v.mount(ctx)
}

func (v *RegisterView) SetEmail(s string)           { v.email = s }
func (v *RegisterView) SetPassword(s string)        { v.password = s }
func (v *RegisterView) SetConfirmPassword(s string) { v.confirm = s }

// Submit creates the account. Outcomes are reported through the notifier.
func (v *RegisterView) Submit(ctx context.Context) error {
	ctx, done, err := v.bind(ctx)
	if err != nil {
		return err
	}
	defer done()

	err = v.auth.Register(ctx, models.Registration{Email: v.email, Password: v.password, ConfirmPassword: v.confirm})
	if !v.Mounted() {
		return nil
	}

	switch {
	case err == nil:
		v.email, v.password, v.confirm = "", "", ""
		v.notify.Success("Registration successful!")
	case errors.Is(err, common.ErrPasswordMismatch):
		v.notify.Error("Passwords do not match.")
	case errors.Is(err, common.ErrValidation):
		v.notify.Error(validationNotice(err))
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrMalformedResponse):
		v.log.Error(ctx, "register failed", "error", err)
		v.notify.Error("An unexpected error occurred.")
	default:
		if msg := client.ServiceMessage(err); msg != "" {
			v.notify.Error(msg)
		} else {
			v.notify.Error("Registration failed.")
		}
	}
	return nil
}

func (v *RegisterView) Render(w io.Writer) {
	fmt.Fprintln(w, "Register")
	fmt.Fprintf(w, "  Email:            %s\n", v.email)
	fmt.Fprintf(w, "  Password:         %s\n", strings.Repeat("*", len(v.password)))
	fmt.Fprintf(w, "  Confirm Password: %s\n", strings.Repeat("*", len(v.confirm)))
	fmt.Fprintln(w, "  [submit]")
}

// validationNotice turns a wrapped validation error into a sentence.
func validationNotice(err error) string {
	msg := strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
