package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tidegate/fileshare/pkg/sharesdk"
	"github.com/tidegate/fileshare/pkg/slogx"
)

const version = "0.3.0"

// App is the terminal frontend for the fileshare service. It owns no
// protocol state of its own: all credentials live in the session store and
// all protocol behavior lives in sharesdk.
type App struct {
	cfg    Config
	log    *slog.Logger
	client *sharesdk.SDKClient
	store  sharesdk.SessionStore

	in  *bufio.Reader
	out io.Writer
}

func New(cfg Config) *App {
	logger := slogx.New(slogx.Config{
		Service: "fileshare",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	return &App{
		cfg:    cfg,
		log:    logger,
		client: sharesdk.NewSDKClient(cfg.ServerURL),
		store:  sharesdk.NewFileStore(cfg.SessionFile),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run dispatches a single command. Errors returned from here are already
// user-facing messages; the caller prints them and sets the exit code.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	a.log.Debug("dispatching command", "command", cmd, "server", a.cfg.ServerURL)

	switch cmd {
	case "register":
		return a.registerCmd(ctx)
	case "login":
		return a.loginCmd(ctx)
	case "logout":
		return a.logoutCmd()
	case "ls":
		return a.listFilesCmd(ctx)
	case "cat":
		return a.readFileCmd(ctx, rest)
	case "get":
		return a.downloadCmd(ctx, rest)
	case "put":
		return a.uploadCmd(ctx, rest)
	case "share":
		return a.shareCmd(ctx, rest)
	case "links":
		return a.linksCmd(ctx, rest)
	case "revoke":
		return a.revokeCmd(ctx, rest)
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) usage() {
	fmt.Fprint(a.out, `Usage: fileshare <command> [args]

Account:
  register              create an account and log in
  login                 log in and store the session
  logout                discard the stored session

Files:
  ls                    list files
  cat <file>            print a text file (.txt only)
  get <file> [dest]     download a file
  put <file>            upload a file

Share links:
  share <file>          create a share link for a file
  links <file>          list share links for a file
  revoke <link-id>      delete a share link
`)
}

// session resolves the stored session. A missing, expired, or undecodable
// token sends the user to login instead of running the command.
func (a *App) session() (*sharesdk.Session, error) {
	session, err := a.client.Resume(a.store)
	if errors.Is(err, sharesdk.ErrAuthExpired) {
		return nil, errors.New("not logged in (or the session expired): run `fileshare login`")
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// userMessage converts an SDK error into the message shown to the user.
// Per-command overrides (upload, share) refine the permission message.
func userMessage(err error, forbidden string) error {
	var reqErr *sharesdk.RequestError

	switch {
	case errors.Is(err, sharesdk.ErrPermissionDenied):
		return errors.New(forbidden)
	case errors.Is(err, sharesdk.ErrNoPrivateKey), errors.Is(err, sharesdk.ErrAuthExpired):
		return errors.New("not logged in (or the session expired): run `fileshare login`")
	case errors.As(err, &reqErr):
		return fmt.Errorf("the server rejected the request: %s", reqErr.Message)
	default:
		return errors.New("an error occurred, please try again later")
	}
}
