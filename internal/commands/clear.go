package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/todo"
)

func init() {
	Register(&ClearCmd{})
	Register(&ClearCompletedCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete every task" }
func (c *ClearCmd) Usage() string     { return "taskpop clear" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := svc.ClearAll(ctx); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}

// ClearCompletedCmd implements the clear-completed command.
type ClearCompletedCmd struct{}

func (c *ClearCompletedCmd) Name() string      { return "clear-completed" }
func (c *ClearCompletedCmd) Aliases() []string { return []string{"sweep"} }
func (c *ClearCompletedCmd) Synopsis() string  { return "Delete completed tasks" }
func (c *ClearCompletedCmd) Usage() string     { return "taskpop clear-completed" }
func (c *ClearCompletedCmd) NeedsStore() bool  { return true }

func (c *ClearCompletedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCompletedCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	removed, err := svc.ClearCompleted(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", removed)
	}
	return exitcode.Success
}
