package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FormatVersion is the envelope version written by EncodeCollection.
const FormatVersion = 1

// ErrUnsupportedVersion is returned for envelopes written by a newer build.
var ErrUnsupportedVersion = errors.New("store: unsupported format version")

type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// EncodeCollection wraps items in a versioned envelope.
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(envelope[T]{Version: FormatVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}

// DecodeCollection reads a versioned envelope or a bare JSON array, the
// layout written before envelopes existed.
func DecodeCollection[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode collection: empty value")
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return items, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if env.Version < 1 || env.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.Items, nil
}

// EncodeValue and DecodeValue wrap a single record the same way.
func EncodeValue[T any](v T) ([]byte, error) {
	data, err := json.Marshal(struct {
		Version int `json:"version"`
		Value   T   `json:"value"`
	}{FormatVersion, v})
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return data, nil
}

func DecodeValue[T any](data []byte) (T, error) {
	var env struct {
		Version int `json:"version"`
		Value   T   `json:"value"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env.Value, fmt.Errorf("decode value: %w", err)
	}
	if env.Version < 1 || env.Version > FormatVersion {
		return env.Value, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.Value, nil
}
