package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"careportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints a user-facing message for err and returns it unchanged.
// Sentinel errors from the API layer get friendlier wording.
func (a *App) report(err error) error {
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorUnauthorized):
		printlnFn("Your session has expired. Please log in again.")
	case errors.Is(err, common.ErrPlanLimit):
		printlnFn("Not available on your current plan. See 'billing' to upgrade.")
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("The service is unavailable right now. Please try again later.")
	case errors.Is(err, common.ErrorNotFound):
		printlnFn("Not found.")
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

// Register prompts for name, email and password and creates a new account.
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, name, email, string(password)); err != nil {
		return a.report(err)
	}

	printlnFn("Account created. You can now log in.")
	return nil
}

// Login prompts for credentials, authenticates against the platform and
// activates the resulting session. When the user opts to be remembered, the
// credential is also kept in the durable account map so 'switch' can bring
// it back later.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	answer, err := getSimpleText(a.reader, "Remember this account? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	remember := strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")

	if err := a.sessions.Login(ctx, res.UserID, res.Token, remember); err != nil {
		return a.report(err)
	}

	printlnFn("Logged in.")
	return nil
}

// Logout deactivates the current session. Remembered accounts stay in the
// durable map and remain switchable.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return a.report(err)
	}
	printlnFn("Logged out.")
	return nil
}

// SwitchAccount activates a previously remembered account.
func (a *App) SwitchAccount(ctx context.Context, accountID string) error {
	if err := a.sessions.SwitchAccount(ctx, accountID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No remembered account", accountID)
			return err
		}
		return a.report(err)
	}
	printlnFn("Switched to", accountID)
	return nil
}

// Accounts lists the remembered account ids.
func (a *App) Accounts(ctx context.Context) error {
	ids, err := a.sessions.Accounts(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(ids) == 0 {
		printlnFn("No remembered accounts.")
		return nil
	}
	cur, _ := a.sessions.Current()
	for _, id := range ids {
		marker := "  "
		if id == cur.AccountID {
			marker = "* "
		}
		printlnFn(marker + id)
	}
	return nil
}

// WhoAmI fetches and prints the authenticated profile.
func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.auth.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	printlnFn(p.Name, "<"+p.Email+">")
	if p.Plan != "" {
		printlnFn("Plan:", p.Plan)
	}
	return nil
}
