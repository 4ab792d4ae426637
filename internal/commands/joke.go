package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/joke"
	"taskpop/internal/logging"
	"taskpop/internal/todo"
)

func init() {
	Register(&JokeCmd{})
}

// JokeCmd implements the joke command.
type JokeCmd struct {
	client *joke.Client
}

// SetClient overrides the joke client (for testing).
func (c *JokeCmd) SetClient(client *joke.Client) {
	c.client = client
}

func (c *JokeCmd) Name() string      { return "joke" }
func (c *JokeCmd) Aliases() []string { return nil }
func (c *JokeCmd) Synopsis() string  { return "Print a random joke" }
func (c *JokeCmd) Usage() string     { return "taskpop joke" }
func (c *JokeCmd) NeedsStore() bool  { return false }

func (c *JokeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *JokeCmd) Run(ctx context.Context, cfg *config.Config, svc *todo.Service, args []string, out, errOut io.Writer) int {
	client := c.client
	if client == nil {
		client = newJokeClient(cfg, errOut)
	}
	j := client.Display(ctx)
	fmt.Fprintln(out, j.Setup)
	fmt.Fprintln(out, j.Punchline)
	return exitcode.Success
}

// newJokeClient builds a joke client from the settings.
func newJokeClient(cfg *config.Config, errOut io.Writer) *joke.Client {
	return joke.NewClient(
		joke.WithURL(cfg.Settings.JokeURL),
		joke.WithTimeout(cfg.Settings.JokeTimeoutDuration()),
		joke.WithLogger(logging.New(errOut, cfg.Debug)),
	)
}
