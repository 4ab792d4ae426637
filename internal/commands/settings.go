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
	Register(&SettingsCmd{})
}

// SettingsCmd implements the settings command.
type SettingsCmd struct{}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return []string{"set"} }
func (c *SettingsCmd) Synopsis() string  { return "Show or change settings" }
func (c *SettingsCmd) Usage() string     { return "taskpop settings [<key> [<value>]]" }
func (c *SettingsCmd) NeedsStore() bool  { return false }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	switch len(args) {
	case 0:
		for _, key := range config.Keys() {
			v, _ := cfg.Settings.Get(key)
			fmt.Fprintf(out, "%s = %s\n", key, v)
		}
		return exitcode.Success

	case 1:
		v, err := cfg.Settings.Get(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintln(out, v)
		return exitcode.Success

	case 2:
		if err := cfg.Settings.Set(args[0], args[1]); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if err := cfg.SaveSettings(args[0]); err != nil {
			fmt.Fprintf(errOut, "error: failed to save settings: %v\n", err)
			return exitcode.AuthError
		}
		return printOK(cfg, out)

	default:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[2])
		return exitcode.UserError
	}
}
