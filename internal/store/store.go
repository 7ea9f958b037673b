// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// KVStore is a durable key-value blob store. Values are opaque byte
// slices; callers own serialization. Implementations must be safe for
// concurrent use.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
