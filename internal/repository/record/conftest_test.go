package record

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
)

var errCrossSlot = errors.New("CROSSSLOT Keys in request don't hash to the same slot")

// hashTag returns the part of key Redis Cluster hashes: the contents of the
// first non-empty {...} section, or the whole key.
func hashTag(key string) string {
	start := strings.IndexByte(key, '{')
	if start < 0 {
		return key
	}
	end := strings.IndexByte(key[start+1:], '}')
	if end <= 0 {
		return key
	}
	return key[start+1 : start+1+end]
}

// fakeStore is an in-process stand-in for db.Store that honors the command
// semantics the repository relies on.
type fakeStore struct {
	mu    sync.Mutex
	kv    map[string][]byte
	zsets map[string]map[string]float64
	ctrs  map[string]int64

	pingErr  error
	zaddErr  error
	mgetHook func(keys []string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		kv:    make(map[string][]byte),
		zsets: make(map[string]map[string]float64),
		ctrs:  make(map[string]int64),
	}
}

func (f *fakeStore) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[key]
	if !ok {
		return nil, errKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.kv[key]; ok {
		return false, nil
	}
	f.kv[key] = value
	return true, nil
}

func (f *fakeStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if f.mgetHook != nil {
		f.mgetHook(keys)
	}
	for _, k := range keys[min(1, len(keys)):] {
		if hashTag(k) != hashTag(keys[0]) {
			return nil, errCrossSlot
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = f.kv[k]
	}
	return out, nil
}

func (f *fakeStore) Del(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.kv[key]
	delete(f.kv, key)
	return ok, nil
}

func (f *fakeStore) Incr(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctrs[key]++
	return f.ctrs[key], nil
}

func (f *fakeStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	if f.zaddErr != nil {
		return f.zaddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.zsets[key] == nil {
		f.zsets[key] = make(map[string]float64)
	}
	f.zsets[key][member] = score
	return nil
}

func (f *fakeStore) ZRem(_ context.Context, key, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.zsets[key], member)
	return nil
}

func (f *fakeStore) ZRange(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := f.zsets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return set[members[i]] < set[members[j]] })
	return members, nil
}

func newTestRepo(t *testing.T) (*Repo, *fakeStore) {
	t.Helper()
	fs := newFakeStore()
	return New(fs, "strdex:"), fs
}
