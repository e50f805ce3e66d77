package store

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore keeps one file per key under a base directory.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

func NewDisk(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &DiskStore{d: d, basePath: basePath}, nil
}

func (s *DiskStore) Get(key string) ([]byte, error) {
	if !s.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := s.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return val, nil
}

func (s *DiskStore) Put(key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Keys() ([]string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keys []string
	for k := range s.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op: diskv holds no open handles between calls.
func (s *DiskStore) Close() error {
	return nil
}
