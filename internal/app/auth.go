package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidegate/fileshare/pkg/sharesdk"
)

func (a *App) loginCmd(ctx context.Context) error {
	username, err := a.promptLine("Username: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}

	if _, err := a.client.Login(ctx, a.store, username, password); err != nil {
		a.log.Debug("login failed", "error", err)

		var reqErr *sharesdk.RequestError
		if errors.As(err, &reqErr) {
			return fmt.Errorf("problem logging in: %s", reqErr.Message)
		}
		return errors.New("an error occurred, please try again later")
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) registerCmd(ctx context.Context) error {
	username, err := a.promptLine("Username: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := a.client.Register(ctx, username, password); err != nil {
		a.log.Debug("registration failed", "error", err)

		var reqErr *sharesdk.RequestError
		if errors.As(err, &reqErr) {
			if reqErr.StatusCode == http.StatusUnprocessableEntity {
				return errors.New("username contains invalid characters")
			}
			return fmt.Errorf("problem creating account: %s", reqErr.Message)
		}
		return errors.New("an error occurred, please try again later")
	}

	// Log the new account in immediately, as the registration flow always has.
	if _, err := a.client.Login(ctx, a.store, username, password); err != nil {
		return errors.New("account created, but login failed: run `fileshare login`")
	}

	fmt.Fprintln(a.out, "Account created and logged in.")
	return nil
}

func (a *App) logoutCmd() error {
	session, err := a.client.Resume(a.store)
	if err != nil {
		// Logout clears unconditionally, even when nothing resumable is left.
		if clearErr := a.store.Clear(); clearErr != nil {
			return clearErr
		}
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	}

	if err := session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
