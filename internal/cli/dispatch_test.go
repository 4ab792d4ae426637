package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpop/internal/cli"
	"taskpop/internal/commands"
	"taskpop/internal/config"
	"taskpop/internal/exitcode"
	"taskpop/internal/service"
	"taskpop/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(fs *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return fs, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	stdout, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskpop 0.1.0\n" {
		t.Errorf("expected 'taskpop 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, dispatcher, "add", "--priority")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: flag needs an argument: -priority\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	fs := testutil.NewFakeStore()
	fs.AddTask("aaaa1111", "Buy milk", false, "5")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fs))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] Buy milk [Priority: 5]\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}
}

func TestDispatcher_AliasAndCommandFlags(t *testing.T) {
	fs := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fs))
	dir := t.TempDir()

	_, stderr, code := run(t, dispatcher, "add", "--config", dir, "-p", "2", "Call", "mum")
	if code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	stdout, _, code := run(t, dispatcher, "ls", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("ls: expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Call mum [Priority: 2]\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}

	stdout, _, code = run(t, dispatcher, "done", "--config", dir, "--quiet", "1")
	if code != exitcode.Success {
		t.Fatalf("done: expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected quiet toggle, got %q", stdout)
	}
	if !fs.Tasks()[0].Completed {
		t.Error("task should be completed")
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "auth",
			err:      fmt.Errorf("token expired: %w", service.ErrAuth),
			wantCode: exitcode.AuthError,
			wantErr:  "error: auth error: token expired: not authorized\n",
		},
		{
			name:     "backend",
			err:      errors.New("connection refused"),
			wantCode: exitcode.BackendError,
			wantErr:  "error: backend error: connection refused\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
				return nil, tt.err
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
		})
	}
}

func TestDispatcher_CommandsWithoutStoreSkipFactory(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		called = true
		return nil, errors.New("should not be called")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	stdout, _, code := run(t, dispatcher, "color", "--config", t.TempDir(), "9")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "rgb(255, 7, 58)\n" {
		t.Errorf("unexpected colour: %q", stdout)
	}
	if called {
		t.Error("factory should not be called for color")
	}
}

func TestDispatcher_InvalidStoreFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir(), "--store", "floppy")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown store") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_DefaultFactoryMemoryStore(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir(), "--store", "memory")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestDispatcher_DefaultFactoryFileStorePersists(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()

	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "--store", "file", "Buy milk"); code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	stdout, _, code := run(t, dispatcher, "list", "--config", dir, "--store", "file")
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy milk [Priority: unset]\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}
}

func TestDispatcher_GoogleTasksNeedsOAuthClient(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()

	_, stderr, code := run(t, dispatcher, "list", "--config", dir, "--store", "googletasks")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := fmt.Sprintf("error: oauth_client.json not found in %s\n", dir)
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_GoogleTasksNeedsLogin(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "oauth_client.json"), []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, dispatcher, "list", "--config", dir, "--store", "googletasks")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskpop login)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}
