package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given, so an
// explicit empty value can be told apart from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title    optionalString
	desc     optionalString
	priority optionalString
	due      optionalString
	noDue    bool
}

// SetTitle sets --title (for testing).
func (c *EditCmd) SetTitle(s string) { c.title.Set(s) }

// SetDesc sets --desc (for testing).
func (c *EditCmd) SetDesc(s string) { c.desc.Set(s) }

// SetPriority sets --priority (for testing).
func (c *EditCmd) SetPriority(s string) { c.priority.Set(s) }

// SetDue sets --due (for testing).
func (c *EditCmd) SetDue(s string) { c.due.Set(s) }

// SetNoDue sets --no-due (for testing).
func (c *EditCmd) SetNoDue(v bool) { c.noDue = v }

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task" }
func (c *EditCmd) NeedsService() bool { return true }
func (c *EditCmd) NeedsAuth() bool    { return true }
func (c *EditCmd) Usage() string {
	return "taskcli edit [--title <t>] [--desc <text>] [--priority <p>] [--due <date> | --no-due] <ref>"
}

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.desc, "d", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
	fs.Var(&c.due, "due", "")
	fs.BoolVar(&c.noDue, "no-due", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.due.set && c.noDue {
		fmt.Fprintln(errOut, "error: cannot use both --due and --no-due")
		return exitcode.UserError
	}
	if !c.title.set && !c.desc.set && !c.priority.set && !c.due.set && !c.noDue {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	// Parse everything before touching the backend.
	var priority service.Priority
	if c.priority.set {
		if priority, err = service.ParsePriority(c.priority.value); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	var due service.Date
	if c.due.set {
		if due, err = service.ParseDate(c.due.value); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	task, err := ResolveTask(ctx, svc, ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	// The update replaces the whole record, so start from what is stored.
	in := task.Input()
	if c.title.set {
		in.Title = c.title.value
	}
	if c.desc.set {
		in.Description = c.desc.value
	}
	if c.priority.set {
		in.Priority = priority
	}
	if c.due.set {
		in.DueDate = &due
	}
	if c.noDue {
		in.DueDate = nil
	}

	if err := in.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := svc.UpdateTask(ctx, task.ID, in); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
