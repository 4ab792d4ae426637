package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/todo"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpop help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, cmd.Synopsis())
	}
	tw.Flush()
	return exitcode.Success
}

const helpText = `Usage:
  taskpop                                            List all tasks
  taskpop list [common flags] [--open]
  taskpop add [common flags] [--priority <1-10|unset>] <text...>
  taskpop create [common flags] [--priority <1-10|unset>] <text...>
  taskpop toggle [common flags] <n|id-prefix>
  taskpop toggle [common flags] --text <text>
  taskpop clear [common flags]
  taskpop clear-completed [common flags]
  taskpop color [--hex] <1-10|unset>
  taskpop joke [common flags]
  taskpop popup [common flags]
  taskpop serve [common flags] [--addr <host:port>]
  taskpop settings [common flags] [<key> [<value>]]
  taskpop export [common flags]
  taskpop import [common flags] <file>
  taskpop login [common flags]
  taskpop logout [common flags]
  taskpop help
  taskpop version

Common flags:
  --config <dir>     Override config directory
  --store <backend>  Override the store setting (file, memory, sqlite, redis, postgres, googletasks)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
