package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// viewableExtension limits inline viewing to plain text, the same rule the
// web dashboard applied.
func viewableExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}

func (a *App) listFilesCmd(ctx context.Context) error {
	session, err := a.session()
	if err != nil {
		return err
	}

	files, err := session.ListFiles(ctx)
	if err != nil {
		return userMessage(err, "You don't have permission to list files.")
	}

	for _, name := range files {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func (a *App) readFileCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fileshare cat <file>")
	}
	name := args[0]

	if !viewableExtension(name) {
		return errors.New("file extension is not supported for viewing, download the file instead")
	}

	session, err := a.session()
	if err != nil {
		return err
	}

	content, err := session.ReadFile(ctx, name)
	if err != nil {
		return userMessage(err, "You don't have permission to read files.")
	}

	fmt.Fprint(a.out, content)
	return nil
}

func (a *App) downloadCmd(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: fileshare get <file> [dest]")
	}
	name := args[0]
	dest := filepath.Base(name)
	if len(args) == 2 {
		dest = args[1]
	}

	session, err := a.session()
	if err != nil {
		return err
	}

	data, contentType, err := session.DownloadFile(ctx, name)
	if err != nil {
		return userMessage(err, "You don't have permission to download files.")
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	a.log.Debug("downloaded file", "file", name, "dest", dest, "content_type", contentType, "bytes", len(data))
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", dest, len(data))
	return nil
}

func (a *App) uploadCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fileshare put <file>")
	}
	path := args[0]

	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	session, err := a.session()
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	if err := session.UploadFile(ctx, name, contents); err != nil {
		return userMessage(err, "You don't have permission to upload files.")
	}

	fmt.Fprintf(a.out, "Uploaded %s\n", name)
	return nil
}
