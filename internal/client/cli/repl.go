package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviecat/internal/client/views"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, route string)
	Back(ctx context.Context)
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Comment(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the moviecat CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	help                show available commands
//	movies              open the catalogue
//	movie <id>          open one movie
//	go <route>          open any route, e.g. /movies/getMovie/<id>
//	back                return to the previous page
//	refresh             reload the current page
//	login | register    open the forms and submit them
//	logout              sign out
//	add                 add a movie (admins, on /movies)
//	edit <id>           edit a movie (admins, on /movies)
//	delete <id>         delete a movie (admins, on /movies)
//	comment             comment on the open movie
//	exit | quit         leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("moviecat %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: movies, movie <id>, go <route>, back, refresh, add, edit <id>, delete <id>, comment, logout, exit")
			} else {
				printlnFn("Available commands: movies, go <route>, back, refresh, login, register, exit")
			}

		case "movies":
			a.Navigate(ctx, views.RouteMovies)

		case "movie":
			if len(args) == 0 {
				printlnFn("Usage: movie <id>")
				continue
			}
			a.Navigate(ctx, views.MovieRoute(args[0]))

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <route>")
				continue
			}
			a.Navigate(ctx, args[0])

		case "back":
			a.Back(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "comment":
			_ = a.Comment(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
