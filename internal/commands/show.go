package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	format string
}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return []string{"get"} }
func (c *ShowCmd) Synopsis() string   { return "Show one task" }
func (c *ShowCmd) Usage() string      { return "taskcli show [--output <fmt>] <ref>" }
func (c *ShowCmd) NeedsService() bool { return true }
func (c *ShowCmd) NeedsAuth() bool    { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	registerOutputFlag(fs, &c.format)
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, svc, ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	if format == output.Text {
		output.FormatTaskDetail(out, task, time.Now())
		return exitcode.Success
	}
	if err := output.Encode(out, format, task); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
