package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/logging"
	"taskpop/internal/todo"
	"taskpop/internal/ui"
)

func init() {
	Register(&PopupCmd{})
}

// PopupCmd implements the popup command.
type PopupCmd struct{}

func (c *PopupCmd) Name() string      { return "popup" }
func (c *PopupCmd) Aliases() []string { return []string{"ui"} }
func (c *PopupCmd) Synopsis() string  { return "Open the interactive task popup" }
func (c *PopupCmd) Usage() string     { return "taskpop popup" }
func (c *PopupCmd) NeedsStore() bool  { return true }

func (c *PopupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PopupCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if !ui.IsTTY(os.Stdout) {
		fmt.Fprintln(errOut, "error: popup requires a terminal")
		return exitcode.UserError
	}

	// The client is built even with show_joke off; the settings modal can
	// turn jokes on while the popup is open.
	err := ui.Run(ctx, cfg, svc, newJokeClient(cfg, io.Discard), ui.WithLogger(logging.New(errOut, cfg.Debug)))
	if err != nil {
		return reportError(errOut, err)
	}
	return exitcode.Success
}
