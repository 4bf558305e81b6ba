package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

// ServiceFactory creates a Service from the loaded config.
// Used to inject the backend during dispatch. A Service that also implements
// io.Closer is closed when the command returns.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run resolves the command named by args[0] and runs it with the rest.
// An empty argument list runs "list". Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name, rest := "list", []string(nil)
	if len(args) > 0 {
		name, rest = args[0], args[1:]
	}

	// Common flags belong after the command name, so "-x" here is never a command.
	cmd, ok := d.registry.Find(name)
	if strings.HasPrefix(name, "-") || !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, rest, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

// parseArgs splits args into common flags, the command's own flags and
// positional arguments. The returned message is ready to print after "error: ".
func parseArgs(cmd commands.Command, args []string) (commonFlags, []string, string) {
	var common commonFlags
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return common, nil, flagErrorMessage(err)
	}
	// flag stops at "--"; anything dash-led right after it is still a flag typo.
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		return common, nil, "unknown flag: " + positional[0]
	}
	return common, positional, ""
}

// flagErrorMessage rewrites the flag package's errors into the CLI's wording.
func flagErrorMessage(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined:"); ok {
		return "unknown flag: " + strings.TrimSpace(name)
	}
	if name, ok := strings.CutPrefix(msg, "flag needs an argument:"); ok {
		return "flag needs an argument: " + strings.TrimSpace(name)
	}
	return msg
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	common, positionalArgs, msg := parseArgs(cmd, args)
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	if err := cfg.Load(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	if !cmd.NeedsService() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}
	if closer, ok := svc.(io.Closer); ok {
		defer closer.Close()
	}

	if cmd.NeedsAuth() && !svc.IsAuthenticated(ctx) {
		fmt.Fprintf(errOut, "error: not logged in (run: %s login)\n", config.AppName)
		return exitcode.AuthError
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}
