package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/client/router"
	"github.com/wbdash/wbdash/internal/client/services"
	"github.com/wbdash/wbdash/internal/client/view"
)

// Accounts fetches the linked accounts and marks the selected ones.
func (a *App) Accounts(ctx context.Context) error {
	list, err := a.accounts.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, view.RenderAccounts(list, a.sess.Selection().Has))
	return nil
}

func (a *App) userAccounts() []models.LinkedAccount {
	u, _ := a.sess.User()
	return u.WbLks
}

// Select adds accounts to the analytics scope: "select 3 5", "select all"
// or "select none".
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: select <id>...|all|none")
	}
	sel := a.sess.Selection()

	switch args[0] {
	case "all":
		sel.SelectAll(a.userAccounts())
	case "none":
		sel.Clear()
	default:
		u, _ := a.sess.User()
		for i := range args {
			id, err := parseID(args, i, "account id")
			if err != nil {
				return err
			}
			if _, ok := u.Account(id); !ok {
				return fmt.Errorf("%w: %d", services.ErrUnknownAccount, id)
			}
			sel.Add(id)
		}
	}
	return a.selectionChanged(ctx)
}

func (a *App) Unselect(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: unselect <id>...")
	}
	sel := a.sess.Selection()
	for i := range args {
		id, err := parseID(args, i, "account id")
		if err != nil {
			return err
		}
		sel.Remove(id)
	}
	return a.selectionChanged(ctx)
}

func (a *App) selectionChanged(ctx context.Context) error {
	fmt.Fprintf(a.out, "Выбрано кабинетов: %d\n", a.sess.Selection().Len())
	if a.currentPage() == router.PageAnalytics {
		return a.Stats(ctx)
	}
	return nil
}

// AddAccount prompts for a new linked account. Name and token are required.
func (a *App) AddAccount(ctx context.Context) error {
	var in models.AccountInput
	var err error

	if in.Name, err = getSimpleText(a.reader, "Название", a.out); err != nil {
		return err
	}
	if in.Token, err = getSimpleText(a.reader, "API токен", a.out); err != nil {
		return err
	}
	if in.Number, err = GetOptionalInt(a.reader, "Номер кабинета", a.out); err != nil {
		return err
	}
	if in.INN, err = GetOptionalInt(a.reader, "ИНН", a.out); err != nil {
		return err
	}
	if in.TgID, err = GetOptionalInt(a.reader, "Telegram ID", a.out); err != nil {
		return err
	}
	if in.Cookie, err = GetOptionalText(a.reader, "Cookie", a.out); err != nil {
		return err
	}
	if in.AuthorizeV3, err = GetOptionalText(a.reader, "AuthorizeV3", a.out); err != nil {
		return err
	}

	acc, err := a.accounts.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Кабинет %q подключён (id %d)\n", acc.Name, acc.ID)
	return nil
}

func lkAndUser(args []string) (int64, int64, error) {
	lkID, err := parseID(args, 0, "account id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := parseID(args, 1, "user id")
	if err != nil {
		return 0, 0, err
	}
	return lkID, userID, nil
}

// Share grants user access to an owned account: "share <lk> <user>".
func (a *App) Share(ctx context.Context, args []string) error {
	lkID, userID, err := lkAndUser(args)
	if err != nil {
		return err
	}
	msg, err := a.accounts.Share(ctx, lkID, userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Users lists who can see an owned account: "users <lk>".
func (a *App) Users(ctx context.Context, args []string) error {
	lkID, err := parseID(args, 0, "account id")
	if err != nil {
		return err
	}
	users, err := a.accounts.Users(ctx, lkID)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, view.RenderGrantees(users))
	return nil
}

// Revoke removes a grant after confirmation: "revoke <lk> <user>".
func (a *App) Revoke(ctx context.Context, args []string) error {
	lkID, userID, err := lkAndUser(args)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Отозвать доступ пользователя %d к кабинету %d?", userID, lkID), a.out)
	if err != nil || !ok {
		return err
	}
	msg, err := a.accounts.Revoke(ctx, lkID, userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
