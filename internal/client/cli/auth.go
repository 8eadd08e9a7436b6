package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/router"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// Register prompts for the sign-up form. New accounts are inactive until an
// administrator activates them, so on success the user is sent to /login.
func (a *App) Register(ctx context.Context) error {
	var in client.RegisterInput
	var err error

	if in.Nickname, err = getSimpleText(a.reader, "Никнейм", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Phone, err = getSimpleText(a.reader, "Телефон (необязательно)", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	in.Password = string(password)

	if _, err := a.auth.Register(ctx, in); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Регистрация прошла успешно. Дождитесь активации аккаунта.")
	return a.Go(ctx, router.LoginPath)
}

// Login prompts for credentials and opens the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	nickname, err := getSimpleText(a.reader, "Никнейм", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.auth.Login(ctx, nickname, string(password))
	if err != nil {
		if errors.Is(err, client.ErrNotActivated) {
			return errors.New("аккаунт не активирован")
		}
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.log.Warn(ctx, "login failed", "nickname", nickname, "error", err)
		return err
	}

	a.setMode(ModeOnline)
	a.log.Info(ctx, "logged in", "user_id", user.ID)
	fmt.Fprintf(a.out, "Добро пожаловать, %s!\n", user.Nickname)
	return a.Go(ctx, router.DashboardPath)
}

// Logout forgets the saved session and returns to /login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return a.Go(ctx, router.LoginPath)
}
