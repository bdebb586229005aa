package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/strdex/internal/db"
	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/repository/codec"
)

// store is the consumer interface for records (ISP).
type store interface {
	db.Pinger
	db.KVStore
	db.SortedSetStore
}

// defaultKeyTag is used when no prefix is configured; an empty "{}" is not a
// hash tag in Redis Cluster.
const defaultKeyTag = "strdex"

// Repo stores records in Redis/Valkey. Each record is a JSON string keyed by
// the SHA-256 of its value; insertion order lives in a sorted set scored by a
// monotonic counter.
//
// Every key carries the prefix as a hash tag ("{strdex:}rec:<sha>",
// "{strdex:}order", "{strdex:}seq") so that all of them map to one cluster
// slot and the MGET in All stays single-slot.
type Repo struct {
	store  store
	prefix string
}

// New creates a record repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = defaultKeyTag
	}
	return &Repo{store: s, prefix: "{" + prefix + "}"}
}

// Ping checks the underlying store.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Create stores rec. Returns domain.ErrAlreadyExists if the value is already stored.
func (r *Repo) Create(ctx context.Context, rec domrec.Record) error {
	data, err := codec.Encode(rec)
	if err != nil {
		return err
	}

	key := r.recordKey(rec.ID())
	stored, err := r.store.SetNX(ctx, key, data)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if !stored {
		return domain.ErrAlreadyExists
	}

	seq, err := r.store.Incr(ctx, r.seqKey())
	if err == nil {
		err = r.store.ZAdd(ctx, r.orderKey(), float64(seq), rec.ID())
	}
	if err != nil {
		// Roll back so the value can be retried.
		_, _ = r.store.Del(ctx, key)
		return fmt.Errorf("index %s: %w", key, err)
	}
	return nil
}

// Get returns the record for an exact value.
func (r *Repo) Get(ctx context.Context, value string) (domrec.Record, error) {
	key := r.recordKey(analysis.SHA256(value))
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.Record{}, domain.ErrNotFound
		}
		return domrec.Record{}, fmt.Errorf("get %s: %w", key, err)
	}
	return codec.Decode(data)
}

// Delete removes the record for an exact value.
func (r *Repo) Delete(ctx context.Context, value string) error {
	id := analysis.SHA256(value)
	key := r.recordKey(id)

	existed, err := r.store.Del(ctx, key)
	if err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if !existed {
		return domain.ErrNotFound
	}

	if err := r.store.ZRem(ctx, r.orderKey(), id); err != nil {
		return fmt.Errorf("unindex %s: %w", key, err)
	}
	return nil
}

// All returns every record in insertion order. Records deleted between the
// index read and the fetch are skipped.
func (r *Repo) All(ctx context.Context) ([]domrec.Record, error) {
	ids, err := r.store.ZRange(ctx, r.orderKey())
	if err != nil {
		return nil, fmt.Errorf("read order index: %w", err)
	}
	if len(ids) == 0 {
		return []domrec.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	blobs, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	out := make([]domrec.Record, 0, len(blobs))
	for i, data := range blobs {
		if data == nil {
			continue
		}
		rec, err := codec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Repo) recordKey(id string) string { return r.prefix + "rec:" + id }

func (r *Repo) orderKey() string { return r.prefix + "order" }

func (r *Repo) seqKey() string { return r.prefix + "seq" }
