// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programmerraja/englishMate/internal/store"
)

func TestFreshInstallPersistsDefaultDocument(t *testing.T) {
	kv := store.NewMemoryStore()
	s := New(kv, nil)
	ctx := context.Background()

	items, err := s.Vocabulary(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// The default document was persisted by the first read.
	raw, err := kv.Get(ctx, "englishmate:db")
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotNil(t, doc.Vocabulary)
	assert.NotNil(t, doc.ChatSessions)
	assert.Equal(t, DefaultDailyGoal, doc.UserSettings.DailyGoal)
	assert.NotNil(t, doc.Stats.WordsLearnedHistory)
}

func TestLegacySavedWordsMigration(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()

	savedAt := time.Date(2024, 11, 2, 8, 30, 0, 0, time.UTC)
	legacy := []legacyWord{
		{Word: "cat", Definition: "a feline", Timestamp: savedAt.UnixMilli()},
		{Word: "dog", Definition: "a canine", Example: "the dog barked"},
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "savedWords", raw))

	s := New(kv, nil)
	items, err := s.Vocabulary(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	cat := items[0]
	assert.Equal(t, "cat", cat.Word)
	assert.Equal(t, "a feline", cat.Meaning)
	assert.NotEmpty(t, cat.ID)
	assert.True(t, cat.Stats.PracticedAt.Equal(savedAt), "practicedAt derived from legacy timestamp")
	assert.Equal(t, 1, cat.Stats.ConfidenceLevel)

	// Record without a timestamp gets stats synthesized from now.
	dog := items[1]
	assert.Equal(t, "the dog barked", dog.Example)
	assert.False(t, dog.Stats.PracticedAt.IsZero())

	// Subsequent reads see the structured document, not the legacy array.
	structured, err := kv.Get(ctx, "englishmate:db")
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(structured, &doc))
	assert.Len(t, doc.Vocabulary, 2)
}

func TestBackfillOlderDocument(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()

	// A v1-era document: vocabulary only, no sessions/settings/stats.
	older := `{"vocabulary":[{"id":"w1","word":"cat","meaning":"a feline","tags":[],"stats":{"practicedAt":"2024-11-02T08:30:00Z","nextReviewDate":"2024-11-03T08:30:00Z","confidenceLevel":2}}]}`
	require.NoError(t, kv.Set(ctx, "englishmate:db", []byte(older)))

	s := New(kv, nil)
	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultDailyGoal, settings.DailyGoal)

	items, err := s.Vocabulary(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Stats.ConfidenceLevel, "existing data untouched by backfill")

	// The backfilled document was persisted.
	raw, err := kv.Get(ctx, "englishmate:db")
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotNil(t, doc.ChatSessions)
	assert.NotNil(t, doc.Stats.WordsLearnedHistory)
	assert.Equal(t, DefaultDailyGoal, doc.UserSettings.DailyGoal)
}

func TestBackfillIsIdempotent(t *testing.T) {
	kv := store.NewMemoryStore()
	s := New(kv, nil)
	ctx := context.Background()

	_, err := s.Vocabulary(ctx)
	require.NoError(t, err)
	first, err := kv.Get(ctx, "englishmate:db")
	require.NoError(t, err)

	// A second read of an up-to-date document changes nothing.
	_, err = s.Vocabulary(ctx)
	require.NoError(t, err)
	second, err := kv.Get(ctx, "englishmate:db")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
