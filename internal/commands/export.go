package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/store"
	"taskpop/internal/todo"
)

func init() {
	Register(&ExportCmd{})
	Register(&ImportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct{}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print the stored document as JSON" }
func (c *ExportCmd) Usage() string     { return "taskpop export" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	tasks, err := svc.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	data, err := store.Encode(tasks)
	if err != nil {
		return reportError(errOut, err)
	}
	if _, err := out.Write(data); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// ImportCmd implements the import command.
type ImportCmd struct{}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Replace the task list from an exported document" }
func (c *ImportCmd) Usage() string     { return "taskpop import <file>" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: file required")
		return exitcode.UserError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := store.Decode(data, nil)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid document: %v\n", err)
		return exitcode.UserError
	}

	if err := svc.Replace(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d\n", len(tasks))
	}
	return exitcode.Success
}
