// Package joke fetches a random joke for the popup's joke panel.
package joke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultURL is the public joke endpoint.
	DefaultURL = "https://official-joke-api.appspot.com/random_joke"

	// DefaultTimeout bounds one request.
	DefaultTimeout = 5 * time.Second

	// failureThreshold consecutive failures open the breaker.
	failureThreshold = 3

	// breakerCooldown is how long the breaker stays open.
	breakerCooldown = 30 * time.Second

	maxBodySize = 64 * 1024
)

// Fallback texts shown instead of a joke.
const (
	EmptySetup     = "Oops! Couldn't fetch a joke."
	ErrorSetup     = "Error fetching joke!"
	ErrorPunchline = "Please try again later."
)

// Joke is one setup/punchline pair.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Fallback is shown when a joke cannot be fetched.
var Fallback = Joke{Setup: ErrorSetup, Punchline: ErrorPunchline}

// ErrCircuitOpen is returned while the endpoint is considered down.
var ErrCircuitOpen = errors.New("joke service unavailable")

// Client fetches jokes over HTTP.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	logger  *log.Logger
	breaker *gobreaker.CircuitBreaker[Joke]
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the endpoint. An empty url keeps DefaultURL.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:     DefaultURL,
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.breaker = gobreaker.NewCircuitBreaker[Joke](gobreaker.Settings{
		Name:        "joke",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return c
}

// Fetch performs one request. It does not retry.
func (c *Client) Fetch(ctx context.Context) (Joke, error) {
	j, err := c.breaker.Execute(func() (Joke, error) {
		return c.fetch(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Joke{}, ErrCircuitOpen
	}
	return j, err
}

func (c *Client) fetch(ctx context.Context) (Joke, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Joke{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Joke{}, fmt.Errorf("fetch joke: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Joke{}, fmt.Errorf("fetch joke: unexpected status %s", resp.Status)
	}

	var j Joke
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&j); err != nil {
		return Joke{}, fmt.Errorf("decode joke: %w", err)
	}
	return j, nil
}

// Display returns a joke ready to show. Failures are logged and replaced by
// Fallback; a joke without a setup shows EmptySetup.
func (c *Client) Display(ctx context.Context) Joke {
	j, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Error("failed to fetch joke", "err", err)
		return Fallback
	}
	if j.Setup == "" {
		j.Setup = EmptySetup
	}
	return j
}
