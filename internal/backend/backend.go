// Package backend opens the task store selected by the "store" setting.
package backend

import (
	"context"
	"fmt"

	"taskpop/internal/backend/googletasks"
	"taskpop/internal/config"
	"taskpop/internal/kv"
	"taskpop/internal/service"
	"taskpop/internal/store"
)

// Open returns the configured store. Stores backed by a kv.Storage also
// implement io.Closer.
func Open(ctx context.Context, cfg *config.Config) (service.Store, error) {
	if cfg.Settings.Store == config.StoreGoogleTasks {
		return googletasks.New(ctx, cfg)
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return store.NewKV(storage), nil
}

// OpenStorage returns the kv.Storage for every store except googletasks.
func OpenStorage(ctx context.Context, cfg *config.Config) (kv.Storage, error) {
	s := cfg.Settings
	switch s.Store {
	case config.StoreMemory:
		return kv.NewMemory(), nil
	case config.StoreFile, "":
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create config directory: %w", err)
		}
		return kv.NewFile(cfg.StoragePath())
	case config.StoreSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create config directory: %w", err)
		}
		return kv.OpenSQLite(ctx, cfg.DatabasePath())
	case config.StoreRedis:
		addr := s.RedisAddr
		if addr == "" {
			addr = config.DefaultRedisAddr
		}
		return kv.DialRedis(ctx, addr, s.RedisPassword, s.RedisDB, s.RedisNamespace)
	case config.StorePostgres:
		if s.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres store needs postgres_dsn")
		}
		return kv.OpenPostgres(ctx, s.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store: %s", s.Store)
	}
}
