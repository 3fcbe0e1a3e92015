package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tidegate/fileshare/pkg/sharesdk"
)

func (a *App) shareCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fileshare share <file>")
	}
	name := args[0]

	session, err := a.session()
	if err != nil {
		return err
	}

	id, err := session.CreateLink(ctx, name)
	if err != nil {
		return userMessage(err, "You don't have permission to create links.")
	}

	fmt.Fprintf(a.out, "%s/link/%s\n", a.client.BaseURL, id)
	return nil
}

func (a *App) linksCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fileshare links <file>")
	}
	name := args[0]

	session, err := a.session()
	if err != nil {
		return err
	}

	links, err := session.ListLinks(ctx)
	if err != nil {
		return userMessage(err, "You don't have permission to list links.")
	}

	matched := sharesdk.FilterByFile(links, name)
	ids := make([]string, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Fprintf(a.out, "%s  %s/link/%s\n", id, a.client.BaseURL, id)
	}
	return nil
}

func (a *App) revokeCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fileshare revoke <link-id>")
	}
	id := args[0]

	session, err := a.session()
	if err != nil {
		return err
	}

	if err := session.RevokeLink(ctx, id); err != nil {
		return userMessage(err, "You don't have permission to revoke links.")
	}

	fmt.Fprintf(a.out, "Revoked %s\n", id)
	return nil
}
