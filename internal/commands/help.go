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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskcli help [command]" }
func (c *HelpCmd) NeedsService() bool { return false }
func (c *HelpCmd) NeedsAuth() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, helpText)
		return exitcode.Success
	}

	cmd, ok := DefaultRegistry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	return exitcode.Success
}

const helpText = `Usage:
  taskcli                                            List all tasks
  taskcli list [common flags] [--output <fmt>]       List all tasks, sorted and numbered
  taskcli show [common flags] [--output <fmt>] <ref>
  taskcli add [common flags] [--desc <text>] [--priority <p>] [--due <date>] <title...>
  taskcli edit [common flags] [--title <t>] [--desc <text>] [--priority <p>] [--due <date> | --no-due] <ref>
  taskcli done [common flags] <ref>                  Toggle completion (alias: toggle)
  taskcli rm [common flags] <ref>
  taskcli signup [common flags] [--password <pw>] <name> <email>
  taskcli login [common flags] [--password <pw>] <email>
  taskcli logout [common flags]
  taskcli whoami [common flags] [--output <fmt>]
  taskcli help [command]
  taskcli version

A <ref> is a task number as printed by list, or a task id.
Priorities: high, medium, low (or 1, 2, 3). Dates: YYYY-MM-DD.
Output formats: text, json, yaml.
Passwords are read from --password, then $TASKCLI_PASSWORD, then stdin.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
