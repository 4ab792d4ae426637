// Package ui provides the interactive terminal popup.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"taskpop/internal/config"
	"taskpop/internal/joke"
	"taskpop/internal/priority"
	"taskpop/internal/service"
	"taskpop/internal/todo"
)

// opTimeout bounds one store round trip started from a key press.
const opTimeout = 10 * time.Second

// JokeSource supplies the joke panel.
type JokeSource interface {
	Display(ctx context.Context) joke.Joke
}

type focus int

const (
	focusInput focus = iota
	focusList
)

type jokeMsg struct {
	joke joke.Joke
}

// Model is the popup state.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	svc    *todo.Service
	jokes  JokeSource
	logger *log.Logger

	board     *board
	cursor    int
	focus     focus
	input     textinput.Model
	prioIdx   int
	prioColor priority.Color
	settings  *settingsState

	joke        joke.Joke
	jokeLoading bool
	status      string
	width       int
}

// Option configures a Model.
type Option func(*Model)

// WithPalette sets the palette rows are coloured from.
func WithPalette(p *priority.Palette) Option {
	return func(m *Model) { m.board.palette = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// New returns a popup model over svc and installs it as svc's view.
// A nil jokes hides the joke panel.
func New(ctx context.Context, cfg *config.Config, svc *todo.Service, jokes JokeSource, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	m := &Model{
		ctx:    ctx,
		cfg:    cfg,
		svc:    svc,
		jokes:  jokes,
		input:  ti,
		board:  &board{palette: priority.NewPalette(nil)},
		status: "enter add • tab list • ctrl+c quit",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.setPriority(priorityIndex(priority.Priority(cfg.Settings.DefaultPriority)))
	svc.SetView(m.board)
	return m
}

// Run loads the list and runs the popup until the user quits.
func Run(ctx context.Context, cfg *config.Config, svc *todo.Service, jokes JokeSource, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("popup requires a TTY")
	}

	m := New(ctx, cfg, svc, jokes, opts...)
	defer svc.SetView(nil)

	if err := m.Load(); err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Load reads the list from the store and redraws every row.
func (m *Model) Load() error {
	ctx, cancel := context.WithTimeout(m.ctx, opTimeout)
	defer cancel()
	_, err := m.svc.List(ctx)
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchJoke())
}

// Tasks returns the tasks as currently drawn.
func (m *Model) Tasks() service.TaskList {
	return m.board.tasks()
}

// Priority returns the priority selected for the next task.
func (m *Model) Priority() priority.Priority {
	return priority.All()[m.prioIdx]
}

// Status returns the status line.
func (m *Model) Status() string {
	return m.status
}

// Joke returns the joke on display.
func (m *Model) Joke() joke.Joke {
	return m.joke
}

func (m *Model) fetchJoke() tea.Cmd {
	if m.jokes == nil || !m.cfg.Settings.ShowJoke {
		return nil
	}
	m.jokeLoading = true
	ctx := m.ctx
	jokes := m.jokes
	return func() tea.Msg {
		return jokeMsg{joke: jokes.Display(ctx)}
	}
}

func (m *Model) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, opTimeout)
}

// setPriority selects the i-th priority for the next task.
func (m *Model) setPriority(i int) {
	all := priority.All()
	m.prioIdx = wrapIndex(i, len(all))
	m.prioColor = m.board.palette.ColorFor(all[m.prioIdx])
}

func priorityIndex(p priority.Priority) int {
	for i, v := range priority.All() {
		if v == p {
			return i
		}
	}
	return 0
}

func wrapIndex(idx, n int) int {
	if n == 0 {
		return 0
	}
	return ((idx % n) + n) % n
}

func clampCursor(cur, n int) int {
	if n == 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// IsTTY reports whether w is a terminal, including Cygwin and MSYS ptys.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
