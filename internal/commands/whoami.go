package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct {
	format string
}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return []string{"profile"} }
func (c *WhoamiCmd) Synopsis() string   { return "Show the logged in user" }
func (c *WhoamiCmd) Usage() string      { return "taskcli whoami [--output <fmt>]" }
func (c *WhoamiCmd) NeedsService() bool { return true }
func (c *WhoamiCmd) NeedsAuth() bool    { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {
	registerOutputFlag(fs, &c.format)
}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	user, err := svc.Profile(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if format == output.Text {
		output.FormatProfile(out, user)
		return exitcode.Success
	}
	if err := output.Encode(out, format, user); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// registerOutputFlag adds --output and -o.
func registerOutputFlag(fs *flag.FlagSet, format *string) {
	fs.StringVar(format, "output", string(output.Text), "")
	fs.StringVar(format, "o", string(output.Text), "")
}
