// Package repository selects and opens a record store implementation.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/config"
	dbredis "github.com/kailas-cloud/strdex/internal/db/redis"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	badgerrepo "github.com/kailas-cloud/strdex/internal/repository/badger"
	"github.com/kailas-cloud/strdex/internal/repository/memory"
	recordrepo "github.com/kailas-cloud/strdex/internal/repository/record"
)

// Records is the full record store contract shared by every driver.
type Records interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, rec record.Record) error
	Get(ctx context.Context, value string) (record.Record, error)
	Delete(ctx context.Context, value string) error
	All(ctx context.Context) ([]record.Record, error)
}

// Opened is a ready record store plus its cleanup.
type Opened struct {
	Records Records
	Close   func() error
}

// Open builds the record store selected by cfg.Driver. Networked stores are
// polled until ready or cfg.ReadinessTimeout expires.
func Open(ctx context.Context, cfg config.DatabaseConfig, keyPrefix string, logger *zap.Logger) (Opened, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return Opened{Records: memory.New(), Close: func() error { return nil }}, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := dbredis.NewStore(dbredis.Config{
			Addrs:      cfg.Addrs,
			Password:   cfg.Password,
			Standalone: len(cfg.Addrs) == 1,
		})
		if err != nil {
			return Opened{}, fmt.Errorf("connect %s: %w", cfg.Driver, err)
		}
		timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return Opened{}, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		return Opened{
			Records: recordrepo.New(store, keyPrefix),
			Close:   func() error { store.Close(); return nil },
		}, nil

	case config.DriverBadger:
		repo, err := badgerrepo.Open(cfg.Path, cfg.InMemory, logger)
		if err != nil {
			return Opened{}, err
		}
		return Opened{Records: repo, Close: repo.Close}, nil

	default:
		return Opened{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
