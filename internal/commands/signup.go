package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	password string
	stdin    io.Reader
}

// SetStdin sets where the password is read from when no flag or env is set (for testing).
func (c *SignupCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *SignupCmd) Name() string       { return "signup" }
func (c *SignupCmd) Aliases() []string  { return []string{"register"} }
func (c *SignupCmd) Synopsis() string   { return "Create an account" }
func (c *SignupCmd) Usage() string      { return "taskcli signup [--password <pw>] <name> <email>" }
func (c *SignupCmd) NeedsService() bool { return true }
func (c *SignupCmd) NeedsAuth() bool    { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: name and email required")
		return exitcode.UserError
	}
	name := strings.TrimSpace(args[0])
	email := strings.TrimSpace(args[1])
	if name == "" || email == "" {
		fmt.Fprintln(errOut, "error: name and email required")
		return exitcode.UserError
	}

	password, err := readPassword(c.password, c.stdin, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := svc.Signup(ctx, name, email, password); err != nil {
		return reportAuthError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
