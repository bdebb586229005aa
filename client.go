// Package strdex stores strings together with their computed properties and
// filters them by structured predicates or short English queries.
package strdex

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/repository"
	batchuc "github.com/kailas-cloud/strdex/internal/usecase/batch"
	queryuc "github.com/kailas-cloud/strdex/internal/usecase/query"
	stringsuc "github.com/kailas-cloud/strdex/internal/usecase/strings"
)

// Client is the strdex SDK entry point.
type Client struct {
	store    repository.Opened
	strSvc   *stringsuc.Service
	querySvc *queryuc.Service
	batchSvc *batchuc.Service
	logger   *zap.Logger
}

// New opens the configured store and wires the services.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := repository.Open(ctx, cfg.db, cfg.keyPrefix, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("strdex: %w", err)
	}

	batchSvc, err := batchuc.New(store.Records, cfg.workers)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("strdex: %w", err)
	}
	batchSvc.WithMaxSize(cfg.maxBatchSize)

	return &Client{
		store:    store,
		strSvc:   stringsuc.New(store.Records),
		querySvc: queryuc.New(store.Records),
		batchSvc: batchSvc,
		logger:   cfg.logger,
	}, nil
}

// Close releases the worker pool and the store.
func (c *Client) Close() error {
	c.batchSvc.Release()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Records.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Add analyzes and stores value. Storing the same value twice fails with
// ErrAlreadyExists.
func (c *Client) Add(ctx context.Context, value string) (Record, error) {
	rec, err := c.strSvc.Create(c.withLogger(ctx), value)
	if err != nil {
		return Record{}, fmt.Errorf("add: %w", err)
	}
	return recordFromDomain(rec), nil
}

// AddBatch stores values and reports each outcome in input order.
// The call fails as a whole only with ErrBatchTooLarge.
func (c *Client) AddBatch(ctx context.Context, values []string) ([]BatchItem, error) {
	results, err := c.batchSvc.Create(c.withLogger(ctx), values)
	if err != nil {
		return nil, fmt.Errorf("add batch: %w", err)
	}
	items := make([]BatchItem, len(results))
	for i, r := range results {
		items[i] = batchItemFromDomain(r)
	}
	return items, nil
}

// Get returns the record stored for value.
func (c *Client) Get(ctx context.Context, value string) (Record, error) {
	rec, err := c.strSvc.Get(c.withLogger(ctx), value)
	if err != nil {
		return Record{}, fmt.Errorf("get: %w", err)
	}
	return recordFromDomain(rec), nil
}

// Delete removes the record stored for value.
func (c *Client) Delete(ctx context.Context, value string) error {
	if err := c.strSvc.Delete(c.withLogger(ctx), value); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// List returns records matching f in insertion order. A zero Filters
// returns every record.
func (c *Client) List(ctx context.Context, f Filters) ([]Record, error) {
	_, matched, err := c.querySvc.Apply(c.withLogger(ctx), f.toDomain())
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return recordsFromDomain(matched), nil
}

// Query interprets a natural language phrase such as
// "single word palindromic strings" and returns the matching records.
func (c *Client) Query(ctx context.Context, text string) (Interpretation, []Record, error) {
	in, matched, err := c.querySvc.Interpret(c.withLogger(ctx), text)
	if err != nil {
		return Interpretation{}, nil, fmt.Errorf("query: %w", err)
	}
	return Interpretation{
		Original: in.Original(),
		Filters:  filtersFromDomain(in.Filters()),
	}, recordsFromDomain(matched), nil
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
