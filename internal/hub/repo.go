package hub

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sadopc/focusboard/internal/store"
)

// repo is an in-memory ordered collection mirrored to one KV key.
type repo[T any] struct {
	key   string
	items []T
	idOf  func(T) string
	kv    store.KV
	log   *slog.Logger
}

func newRepo[T any](kv store.KV, log *slog.Logger, key string, idOf func(T) string) *repo[T] {
	return &repo[T]{key: key, idOf: idOf, kv: kv, log: log}
}

// load replaces the in-memory collection with the stored one. A missing or
// unreadable value leaves the collection empty.
func (r *repo[T]) load() {
	r.items = nil

	data, err := r.kv.Get(r.key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		r.log.Warn("read collection failed, starting empty", slog.String("key", r.key), slog.Any("error", err))
		return
	}

	items, err := store.DecodeCollection[T](data)
	if err != nil {
		r.log.Warn("malformed collection, starting empty", slog.String("key", r.key), slog.Any("error", err))
		return
	}
	r.items = items
	r.log.Debug("collection loaded", slog.String("key", r.key), slog.Int("count", len(items)))
}

// commit installs next and writes the whole collection.
func (r *repo[T]) commit(next []T) error {
	r.items = next
	data, err := store.EncodeCollection(next)
	if err != nil {
		return err
	}
	if err := r.kv.Put(r.key, data); err != nil {
		r.log.Error("save collection failed", slog.String("key", r.key), slog.Any("error", err))
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}

func (r *repo[T]) all() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *repo[T]) get(id string) (T, bool) {
	return findByID(r.items, id, r.idOf)
}

func (r *repo[T]) remove(id string) error {
	next, ok := removeByID(r.items, id, r.idOf)
	if !ok {
		return nil
	}
	return r.commit(next)
}

func (r *repo[T]) replace(id string, fn func(T) T) error {
	next, ok := replaceByID(r.items, id, r.idOf, fn)
	if !ok {
		return nil
	}
	return r.commit(next)
}
