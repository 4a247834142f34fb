package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Navigate(_ context.Context, route string) {
	f.calls = append(f.calls, "go "+route)
}
func (f *fakeExec) Back(context.Context) { f.calls = append(f.calls, "back") }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Add(context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	f.calls = append(f.calls, "edit "+id)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}
func (f *fakeExec) Comment(context.Context) error { f.calls = append(f.calls, "comment"); return nil }
func (f *fakeExec) Refresh(context.Context) error { f.calls = append(f.calls, "refresh"); return nil }

// capturePrintln records everything the REPL prints.
func capturePrintln(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&sb, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"login",
		"movies",
		"movie m0001",
		"go /register",
		"back",
		"refresh",
		"add",
		"edit m0001",
		"delete m0001",
		"comment",
		"register",
		"logout",
		"exit",
		"movies",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"go /movies",
		"go /movies/getMovie/m0001",
		"go /register",
		"back",
		"refresh",
		"add",
		"edit m0001",
		"delete m0001",
		"comment",
		"register",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := capturePrintln(t)

	input := "movie\nedit\ndelete\ngo\nfoobar\n\nquit\n"
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Empty(t, exec.calls)
	got := out.String()
	assert.Contains(t, got, "Usage: movie <id>")
	assert.Contains(t, got, "Usage: edit <id>")
	assert.Contains(t, got, "Usage: delete <id>")
	assert.Contains(t, got, "Usage: go <route>")
	assert.Contains(t, got, "Unknown command: foobar")
	assert.Contains(t, got, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	got := out.String()
	assert.Contains(t, got, "Available commands: movies, go <route>, back, refresh, login, register, exit")
	assert.Contains(t, got, "add, edit <id>, delete <id>, comment, logout")
}

func TestRunREPL_StopsOnEOFAndCancelledContext(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))
	assert.Empty(t, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("movies\n")))
	assert.Empty(t, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(u0001 online)" }, bufio.NewReader(strings.NewReader("exit\n")))

	assert.Contains(t, out.String(), "moviecat (u0001 online)> ")
}
