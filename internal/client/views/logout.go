package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

// LogoutView signs the user out as soon as it is mounted and then sends
// them to the login form.
type LogoutView struct {
	lifecycle

	auth   services.AuthService
	notify Notifier
	log    logging.Logger
}

func NewLogoutView(auth services.AuthService, notify Notifier, log logging.Logger) *LogoutView {
	return &LogoutView{auth: auth, notify: notify, log: orDiscard(log)}
}

func (v *LogoutView) Mount(ctx context.Context) {
	ctx = v.mount(ctx)
	if err := v.auth.Logout(ctx); err != nil {
		v.log.Error(ctx, "logout failed", "error", err)
		v.notify.Error("Logout failed.")
		return
	}
	v.notify.Success("Logged out successfully!")
}

// Redirect always points at the login form.
func (v *LogoutView) Redirect() (string, bool) {
	return RouteLogin, true
}

func (v *LogoutView) Render(w io.Writer) {
	fmt.Fprintln(w, "Logging out...")
}
