package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"taskpop/internal/priority"
)

// Storage backends selectable with the "store" setting.
const (
	StoreFile        = "file"
	StoreMemory      = "memory"
	StoreSQLite      = "sqlite"
	StoreRedis       = "redis"
	StorePostgres    = "postgres"
	StoreGoogleTasks = "googletasks"
)

// Backends lists the valid values of the "store" setting.
var Backends = []string{StoreFile, StoreMemory, StoreSQLite, StoreRedis, StorePostgres, StoreGoogleTasks}

const (
	// DefaultJokeURL is the remote joke endpoint.
	DefaultJokeURL = "https://official-joke-api.appspot.com/random_joke"

	// DefaultJokeTimeout bounds a single joke request.
	DefaultJokeTimeout = 5 * time.Second

	// DefaultGoogleList is the Google Tasks list mirrored by the googletasks store.
	DefaultGoogleList = "taskpop"

	// DefaultRedisAddr is used when the redis store has no address.
	DefaultRedisAddr = "localhost:6379"
)

// Settings are the preferences kept in settings.toml.
type Settings struct {
	Store           string `toml:"store"`
	DefaultPriority string `toml:"default_priority"`
	ShowJoke        bool   `toml:"show_joke"`
	Color           bool   `toml:"color"`

	FilePath       string `toml:"file_path,omitempty"`
	SQLitePath     string `toml:"sqlite_path,omitempty"`
	RedisAddr      string `toml:"redis_addr,omitempty"`
	RedisPassword  string `toml:"redis_password,omitempty"`
	RedisDB        int    `toml:"redis_db,omitempty"`
	RedisNamespace string `toml:"redis_namespace,omitempty"`
	PostgresDSN    string `toml:"postgres_dsn,omitempty"`
	GoogleList     string `toml:"google_list,omitempty"`

	JokeURL     string `toml:"joke_url,omitempty"`
	JokeTimeout string `toml:"joke_timeout,omitempty"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Store:           StoreFile,
		DefaultPriority: string(priority.Unset),
		ShowJoke:        true,
		Color:           true,
		RedisAddr:       DefaultRedisAddr,
		GoogleList:      DefaultGoogleList,
		JokeURL:         DefaultJokeURL,
		JokeTimeout:     DefaultJokeTimeout.String(),
	}
}

// JokeTimeoutDuration returns the parsed joke timeout, falling back to the
// default when unset or malformed.
func (s Settings) JokeTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.JokeTimeout)
	if err != nil || d <= 0 {
		return DefaultJokeTimeout
	}
	return d
}

// setting binds a settings key to its field.
type setting struct {
	key string
	get func(*Settings) string
	set func(*Settings, string) error
}

func stringSetting(key string, field func(*Settings) *string) setting {
	return setting{
		key: key,
		get: func(s *Settings) string { return *field(s) },
		set: func(s *Settings, v string) error { *field(s) = v; return nil },
	}
}

func boolSetting(key string, field func(*Settings) *bool) setting {
	return setting{
		key: key,
		get: func(s *Settings) string { return strconv.FormatBool(*field(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid boolean: %q", v)
			}
			*field(s) = b
			return nil
		},
	}
}

var settingsTable = []setting{
	{
		key: "store",
		get: func(s *Settings) string { return s.Store },
		set: func(s *Settings, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, b := range Backends {
				if v == b {
					s.Store = v
					return nil
				}
			}
			return fmt.Errorf("unknown store: %q (want one of %s)", v, strings.Join(Backends, ", "))
		},
	},
	{
		key: "default_priority",
		get: func(s *Settings) string { return s.DefaultPriority },
		set: func(s *Settings, v string) error {
			p, err := priority.Parse(v)
			if err != nil {
				return err
			}
			s.DefaultPriority = string(p)
			return nil
		},
	},
	boolSetting("show_joke", func(s *Settings) *bool { return &s.ShowJoke }),
	boolSetting("color", func(s *Settings) *bool { return &s.Color }),
	stringSetting("file_path", func(s *Settings) *string { return &s.FilePath }),
	stringSetting("sqlite_path", func(s *Settings) *string { return &s.SQLitePath }),
	stringSetting("redis_addr", func(s *Settings) *string { return &s.RedisAddr }),
	stringSetting("redis_password", func(s *Settings) *string { return &s.RedisPassword }),
	{
		key: "redis_db",
		get: func(s *Settings) string { return strconv.Itoa(s.RedisDB) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("invalid redis db: %q", v)
			}
			s.RedisDB = n
			return nil
		},
	},
	stringSetting("redis_namespace", func(s *Settings) *string { return &s.RedisNamespace }),
	stringSetting("postgres_dsn", func(s *Settings) *string { return &s.PostgresDSN }),
	stringSetting("google_list", func(s *Settings) *string { return &s.GoogleList }),
	stringSetting("joke_url", func(s *Settings) *string { return &s.JokeURL }),
	{
		key: "joke_timeout",
		get: func(s *Settings) string { return s.JokeTimeout },
		set: func(s *Settings, v string) error {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid duration: %q", v)
			}
			s.JokeTimeout = d.String()
			return nil
		},
	},
}

// ErrUnknownSetting is returned for keys that are not settings.
var ErrUnknownSetting = errors.New("unknown setting")

// Keys returns the setting keys in display order.
func Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

func lookup(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// Get returns the string form of a setting.
func (s *Settings) Get(key string) (string, error) {
	st, ok := lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return st.get(s), nil
}

// Set validates and assigns a setting from its string form.
func (s *Settings) Set(key, value string) error {
	st, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return st.set(s, value)
}

// EnvName returns the environment variable overriding key.
func EnvName(key string) string {
	return "TASKPOP_" + strings.ToUpper(key)
}

func (s *Settings) loadFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return err
	}
	// Run file values through the same validation as other sources.
	for _, key := range []string{"store", "default_priority"} {
		st, _ := lookup(key)
		if err := st.set(s, st.get(s)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) loadEnv(getenv func(string) string) error {
	for _, st := range settingsTable {
		v := getenv(EnvName(st.key))
		if v == "" {
			continue
		}
		if err := st.set(s, v); err != nil {
			return fmt.Errorf("%s: %w", EnvName(st.key), err)
		}
	}
	return nil
}

func (s Settings) save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open settings file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	return f.Close()
}
