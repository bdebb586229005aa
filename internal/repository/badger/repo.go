package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	"github.com/kailas-cloud/strdex/internal/repository/codec"
)

const (
	recordPrefix = "r:"
	orderPrefix  = "o:"
	seqKey       = "seq"
	seqLen       = 8
)

// Repo persists records in an embedded Badger database.
//
// Layout:
//
//	r:<sha256>  -> 8-byte big-endian sequence || JSON record
//	o:<seq>     -> sha256
//
// Order keys sort lexicographically in insertion order.
type Repo struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (or creates) a Badger-backed repository. An empty path with
// inMemory set keeps everything in RAM.
func Open(path string, inMemory bool, logger *zap.Logger) (*Repo, error) {
	db, err := openDB(path, inMemory, logger)
	if err != nil {
		return nil, err
	}
	seq, err := db.GetSequence([]byte(seqKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire sequence: %w", err)
	}
	return &Repo{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (r *Repo) Close() error {
	if err := r.seq.Release(); err != nil {
		_ = r.db.Close()
		return fmt.Errorf("release sequence: %w", err)
	}
	return r.db.Close()
}

// Ping reports whether the database is still open.
func (r *Repo) Ping(_ context.Context) error {
	if r.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Create stores rec unless its value is already present.
func (r *Repo) Create(_ context.Context, rec record.Record) error {
	data, err := codec.Encode(rec)
	if err != nil {
		return err
	}
	n, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	rkey := recordKey(rec.ID())
	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(rkey)
		switch {
		case err == nil:
			return domain.ErrAlreadyExists
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		if err := txn.Set(rkey, append(encodeSeq(n), data...)); err != nil {
			return err
		}
		return txn.Set(orderKey(n), []byte(rec.ID()))
	})
	if errors.Is(err, badger.ErrConflict) {
		// A concurrent writer committed the same key first.
		return domain.ErrAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("create %s: %w", rec.ID(), err)
	}
	return err
}

// Get returns the record for an exact value.
func (r *Repo) Get(_ context.Context, value string) (record.Record, error) {
	var rec record.Record
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		rec, _, err = readRecord(txn, analysis.SHA256(value))
		return err
	})
	return rec, err
}

// Delete removes the record for an exact value.
func (r *Repo) Delete(_ context.Context, value string) error {
	id := analysis.SHA256(value)
	return r.db.Update(func(txn *badger.Txn) error {
		_, n, err := readRecord(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(recordKey(id)); err != nil {
			return err
		}
		return txn.Delete(orderKey(n))
	})
}

// All returns every record in insertion order from a single read transaction.
func (r *Repo) All(_ context.Context) ([]record.Record, error) {
	out := []record.Record{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(orderPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, _, err := readRecord(txn, string(id))
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func readRecord(txn *badger.Txn, id string) (record.Record, uint64, error) {
	item, err := txn.Get(recordKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record.Record{}, 0, domain.ErrNotFound
	}
	if err != nil {
		return record.Record{}, 0, fmt.Errorf("get %s: %w", id, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return record.Record{}, 0, fmt.Errorf("read %s: %w", id, err)
	}
	if len(val) < seqLen {
		return record.Record{}, 0, fmt.Errorf("read %s: truncated value", id)
	}
	rec, err := codec.Decode(val[seqLen:])
	if err != nil {
		return record.Record{}, 0, err
	}
	return rec, binary.BigEndian.Uint64(val[:seqLen]), nil
}

func recordKey(id string) []byte { return []byte(recordPrefix + id) }

func orderKey(n uint64) []byte {
	return append([]byte(orderPrefix), encodeSeq(n)...)
}

func encodeSeq(n uint64) []byte {
	buf := make([]byte, seqLen)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}
