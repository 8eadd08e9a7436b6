package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wbdash/wbdash/internal/client/datefilter"
	"github.com/wbdash/wbdash/internal/client/view"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Accounts(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Unselect(ctx context.Context, args []string) error
	AddAccount(ctx context.Context) error
	Share(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Revoke(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	SetDate(ctx context.Context, c datefilter.Calendar, args []string) error
	Calendar(ctx context.Context, args []string) error
	Products(ctx context.Context) error
	Orders(ctx context.Context) error
	Refresh(ctx context.Context) error
}

var errLoginRequired = errors.New("войдите в систему: login")

const (
	helpAnonymous = "Команды: login, register, go <путь>, exit"
	helpSignedIn  = `Команды:
  go <путь>                   перейти (/dashboard, /dashboard/analytics, /dashboard/wb-lk, ...)
  accounts                    кабинеты WB
  select <id>...|all|none     выбрать кабинеты для аналитики
  unselect <id>...            снять выбор
  add-account                 подключить кабинет
  share <кабинет> <user>      дать доступ
  users <кабинет>             кто имеет доступ
  revoke <кабинет> <user>     отозвать доступ
  stats                       продажи за период и прошлый период
  from <YYYY-MM-DD>           начало периода
  to <YYYY-MM-DD>             конец периода
  calendar from|to [prev|next|close]
  products                    товары
  orders                      заказы по дням
  refresh                     обновить профиль
  logout, exit`
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Handler errors are printed and the loop continues. It returns on EOF, on
// "exit" or "quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("wb %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("До свидания!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(view.RenderError(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "go":
		if len(args) == 0 {
			return errors.New("usage: go <path>")
		}
		return a.Go(ctx, args[0])
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "accounts", "select", "unselect", "add-account", "share", "users", "revoke",
			"stats", "from", "to", "calendar", "products", "orders", "refresh":
			return errLoginRequired
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "accounts":
		return a.Accounts(ctx)
	case "select":
		return a.Select(ctx, args)
	case "unselect":
		return a.Unselect(ctx, args)
	case "add-account":
		return a.AddAccount(ctx)
	case "share":
		return a.Share(ctx, args)
	case "users":
		return a.Users(ctx, args)
	case "revoke":
		return a.Revoke(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "from":
		return a.SetDate(ctx, datefilter.From, args)
	case "to":
		return a.SetDate(ctx, datefilter.To, args)
	case "calendar":
		return a.Calendar(ctx, args)
	case "products":
		return a.Products(ctx)
	case "orders":
		return a.Orders(ctx)
	case "refresh":
		return a.Refresh(ctx)
	}

	printlnFn("Неизвестная команда:", cmd)
	return nil
}
