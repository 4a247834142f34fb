package views

import (
	"fmt"
	"io"
	"strings"
)

type NavItem struct {
	Label string
	Route string
}

// Navbar lists the top level routes for the current session.
type Navbar struct {
	session SessionReader
}

func NewNavbar(session SessionReader) *Navbar {
	return &Navbar{session: session}
}

func (n *Navbar) Items() []NavItem {
	items := []NavItem{{Label: "Movies", Route: RouteMovies}}
	if n.session.Get().Authenticated() {
		return append(items, NavItem{Label: "Logout", Route: RouteLogout})
	}
	return append(items, NavItem{Label: "Login", Route: RouteLogin}, NavItem{Label: "Register", Route: RouteRegister})
}

func (n *Navbar) Render(w io.Writer) {
	items := n.Items()
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", it.Label, it.Route))
	}
	fmt.Fprintf(w, "Movie Catalogue | %s\n", strings.Join(parts, " | "))
}
