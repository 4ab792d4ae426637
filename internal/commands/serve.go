package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/logging"
	"taskpop/internal/server"
	"taskpop/internal/todo"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task API over HTTP" }
func (c *ServeCmd) Usage() string     { return "taskpop serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", server.DefaultAddr, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	logger := logging.New(errOut, cfg.Debug)
	opts := []server.Option{server.WithLogger(logger)}
	if cfg.Settings.ShowJoke {
		opts = append(opts, server.WithJokes(newJokeClient(cfg, errOut)))
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on %s\n", c.addr)
	}
	if err := server.New(svc, opts...).ListenAndServe(ctx, c.addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
