package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/priority"
	"taskpop/internal/todo"
)

func init() {
	Register(&ColorCmd{})
}

// ColorCmd implements the color command.
type ColorCmd struct {
	hex bool
}

func (c *ColorCmd) Name() string      { return "color" }
func (c *ColorCmd) Aliases() []string { return nil }
func (c *ColorCmd) Synopsis() string  { return "Print the display colour of a priority" }
func (c *ColorCmd) Usage() string     { return "taskpop color [--hex] <1-10|unset>" }
func (c *ColorCmd) NeedsStore() bool  { return false }

func (c *ColorCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.hex, "hex", false, "")
}

func (c *ColorCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: priority required")
		return exitcode.UserError
	}
	p, err := priority.Parse(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	color := priority.ColorFor(p)
	if c.hex {
		fmt.Fprintln(out, color.Hex())
	} else {
		fmt.Fprintln(out, color.String())
	}
	return exitcode.Success
}
