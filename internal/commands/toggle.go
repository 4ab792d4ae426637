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
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	text string
}

// SetText sets the text to match (for testing).
func (c *ToggleCmd) SetText(text string) {
	c.text = text
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "taskpop toggle <n|id-prefix> | --text <text>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.text, "text", "", "")
	fs.StringVar(&c.text, "t", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if c.text != "" {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot use both --text and a task reference")
			return exitcode.UserError
		}
		if _, err := svc.ToggleText(ctx, c.text); err != nil {
			return reportError(errOut, err)
		}
		return printOK(cfg, out)
	}

	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	task, err := ref.Resolve(tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := svc.Toggle(ctx, task.ID); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}

func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
