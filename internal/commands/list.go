package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/output"
	"taskpop/internal/todo"
	"taskpop/internal/ui"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpop` (no args) and `taskpop list`.
type ListCmd struct {
	open bool
}

// SetOpen restricts output to open tasks (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskpop list [--open]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	f := formatter(cfg, out)

	if !c.open {
		svc.SetView(output.NewTextView(out, f, cfg.Quiet))
		if _, err := svc.List(ctx); err != nil {
			return reportError(errOut, err)
		}
		return exitcode.Success
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	// Numbers stay those of the full list so they can be passed to toggle.
	printed := 0
	for i, task := range tasks {
		if task.Completed {
			continue
		}
		f.FormatTask(out, i+1, task)
		printed++
	}
	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, output.EmptyMessage)
	}
	return exitcode.Success
}

// formatter returns the task formatter for out. Colour swatches are only
// drawn on terminals.
func formatter(cfg *config.Config, out io.Writer) output.Formatter {
	return output.Formatter{Swatch: cfg.Settings.Color && ui.IsTTY(out)}
}
