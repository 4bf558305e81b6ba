package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordEnv is consulted when --password is not given.
const PasswordEnv = "TASKCLI_PASSWORD"

// readPassword returns the --password value, else $TASKCLI_PASSWORD, else one
// line from stdin (nil means os.Stdin). A terminal on stdin gets a prompt on
// prompt and no echo.
func readPassword(flagValue string, stdin io.Reader, prompt io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}

	var password string
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(b)
	} else {
		// Unbuffered callers only lose what follows the first line.
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		return "", fmt.Errorf("password required")
	}
	return password, nil
}
