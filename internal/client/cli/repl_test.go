package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbdash/wbdash/internal/client/datefilter"
)

type fakeExec struct {
	loggedIn bool
	fail     error

	calls []string
	args  [][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.fail
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.rec("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.rec("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout", nil)
}
func (f *fakeExec) Go(_ context.Context, path string) error { return f.rec("go", []string{path}) }
func (f *fakeExec) Accounts(context.Context) error          { return f.rec("accounts", nil) }
func (f *fakeExec) Select(_ context.Context, args []string) error {
	return f.rec("select", args)
}
func (f *fakeExec) Unselect(_ context.Context, args []string) error {
	return f.rec("unselect", args)
}
func (f *fakeExec) AddAccount(context.Context) error { return f.rec("add-account", nil) }
func (f *fakeExec) Share(_ context.Context, args []string) error {
	return f.rec("share", args)
}
func (f *fakeExec) Users(_ context.Context, args []string) error {
	return f.rec("users", args)
}
func (f *fakeExec) Revoke(_ context.Context, args []string) error {
	return f.rec("revoke", args)
}
func (f *fakeExec) Stats(context.Context) error { return f.rec("stats", nil) }
func (f *fakeExec) SetDate(_ context.Context, c datefilter.Calendar, args []string) error {
	return f.rec("date-"+c.String(), args)
}
func (f *fakeExec) Calendar(_ context.Context, args []string) error {
	return f.rec("calendar", args)
}
func (f *fakeExec) Products(context.Context) error { return f.rec("products", nil) }
func (f *fakeExec) Orders(context.Context) error   { return f.rec("orders", nil) }
func (f *fakeExec) Refresh(context.Context) error  { return f.rec("refresh", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(toString(v), "\n", " "))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func input(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input(
		"help",
		"stats",
		"login",
		"go /dashboard/analytics",
		"select 1 2",
		"from 2024-06-01",
		"to 2024-06-30",
		"calendar from next",
		"share 1 7",
		"revoke 1 7",
		"products",
		"orders",
		"logout",
		"exit",
		"accounts",
	))

	assert.Equal(t, []string{
		"login", "go", "select", "date-from", "date-to", "calendar", "share", "revoke",
		"products", "orders", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"/dashboard/analytics"}, exec.args[1])
	assert.Equal(t, []string{"1", "2"}, exec.args[2])
	assert.Equal(t, []string{"2024-06-01"}, exec.args[3])
}

func TestRunREPL_AnonymousCommandsNeedLogin(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input("stats", "accounts", "exit"))

	assert.Empty(t, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Equal(t, 2, strings.Count(joined, errLoginRequired.Error()))
}

func TestRunREPL_UnknownAndErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true, fail: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, input("foobar", "stats", "go"))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Неизвестная команда: foobar")
	assert.Contains(t, joined, "boom")
	assert.Contains(t, joined, "usage: go <path>")
	require.Equal(t, []string{"stats"}, exec.calls)
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, input("stats"))
	assert.Equal(t, []string{"stats"}, exec.calls, "last line without newline still runs")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, input("stats", "stats"))
	assert.Empty(t, exec.calls)
}
