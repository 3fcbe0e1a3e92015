package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints a prompt and reads a single trimmed line of input.
func (a *App) promptLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt); err != nil {
		return "", err
	}

	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo. When stdin
// is not a terminal (tests, pipes) it falls back to a plain line read.
func (a *App) promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return a.promptLine(prompt)
	}

	if _, err := fmt.Fprint(a.out, prompt); err != nil {
		return "", err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
