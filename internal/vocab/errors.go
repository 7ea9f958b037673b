// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import "errors"

// Sentinel errors surfaced by store operations. Backend failures are
// wrapped and returned as-is; they are never retried here.
var (
	// ErrDuplicateWord: a vocabulary item with the same word already
	// exists (case-insensitive comparison).
	ErrDuplicateWord = errors.New("word already saved")

	// ErrNotFound: an update or append referenced an id absent from its
	// collection. Deletes are exempt and succeed as no-ops.
	ErrNotFound = errors.New("not found")
)
