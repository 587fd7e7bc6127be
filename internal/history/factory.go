package history

import (
	"context"
	"fmt"
	"os"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/store"
)

// New builds the store selected by cfg.History.Backend.
func New(ctx context.Context, cfg *store.Config) (interfaces.HistoryStore, error) {
	switch cfg.History.Backend {
	case "FILE":
		return NewFileStore(cfg.History.Path), nil
	case "REDIS":
		rs, err := NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.History.RedisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       cfg.History.RedisDB,
			Key:      cfg.History.RedisKey,
		})
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
