package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/config"
	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/record"
)

func TestOpen_LocalDrivers(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{"memory", config.DatabaseConfig{Driver: config.DriverMemory}},
		{"badger in memory", config.DatabaseConfig{Driver: config.DriverBadger, InMemory: true}},
		{"badger on disk", config.DatabaseConfig{Driver: config.DriverBadger, Path: t.TempDir()}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			opened, err := Open(ctx, tc.cfg, "test:", zap.NewNop())
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer func() {
				if err := opened.Close(); err != nil {
					t.Errorf("Close: %v", err)
				}
			}()

			recs := opened.Records
			if err := recs.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}
			if err := recs.Create(ctx, record.New("kayak", time.Now())); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := recs.Create(ctx, record.New("kayak", time.Now())); !errors.Is(err, domain.ErrAlreadyExists) {
				t.Fatalf("duplicate Create: %v", err)
			}
			all, err := recs.All(ctx)
			if err != nil || len(all) != 1 {
				t.Fatalf("All = %v, %v", all, err)
			}
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite"}, "", zap.NewNop())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOpen_RedisWithoutAddrs(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverRedis}, "", zap.NewNop())
	if err == nil {
		t.Fatal("expected error")
	}
}
