// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programmerraja/englishMate/internal/store"
)

func TestExportExcludesSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keys := APIKeys{Gemini: "secret"}
	_, err := s.UpdateSettings(ctx, SettingsPatch{APIKeys: &keys})
	require.NoError(t, err)
	_, err = s.AddVocabulary(ctx, VocabularyInput{Word: "cat", Meaning: "a feline"})
	require.NoError(t, err)

	snap, err := s.ExportSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Vocabulary, 1)
	require.NotNil(t, snap.Stats)
	// Snapshot carries no settings field at all; nothing to assert
	// beyond the shape itself, which the round-trip test exercises.
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()

	for _, w := range []string{"cat", "dog", "bird"} {
		_, err := src.AddVocabulary(ctx, VocabularyInput{Word: w, Meaning: "animal"})
		require.NoError(t, err)
	}
	sess, err := src.CreateChatSession(ctx, "First chat", ProviderGemini)
	require.NoError(t, err)
	_, err = src.AppendMessage(ctx, sess.ID, ChatMessage{Role: RoleUser, Content: "hello"})
	require.NoError(t, err)

	snap, err := src.ExportSnapshot(ctx)
	require.NoError(t, err)

	dst := New(store.NewMemoryStore(), nil)
	added, err := dst.ImportSnapshot(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	srcItems, _ := src.Vocabulary(ctx)
	dstItems, err := dst.Vocabulary(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, srcItems, dstItems)

	srcSessions, _ := src.ChatSessions(ctx)
	dstSessions, err := dst.ChatSessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, srcSessions, dstSessions)
}

func TestImportSkipsCollisions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	existing, err := s.AddVocabulary(ctx, VocabularyInput{Word: "Cat", Meaning: "resident"})
	require.NoError(t, err)
	sess, err := s.CreateChatSession(ctx, "resident chat", ProviderOpenAI)
	require.NoError(t, err)

	snap := &Snapshot{
		Vocabulary: []VocabularyItem{
			{ID: "incoming-1", Word: "cat", Meaning: "case-insensitive duplicate"},
			{ID: existing.ID, Word: "renamed", Meaning: "id duplicate"},
			{ID: "incoming-2", Word: "owl", Meaning: "new"},
		},
		ChatSessions: []ChatSession{
			{ID: sess.ID, Title: "colliding session"},
			{ID: "incoming-session", Title: "new session"},
		},
	}

	added, err := s.ImportSnapshot(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "only the genuinely new word counts")

	items, err := s.Vocabulary(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	words := []string{items[0].Word, items[1].Word}
	assert.ElementsMatch(t, []string{"Cat", "owl"}, words)

	sessions, err := s.ChatSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	for _, got := range sessions {
		if got.ID == sess.ID {
			assert.Equal(t, "resident chat", got.Title, "colliding session is skipped, not merged")
		}
	}
}

func TestImportMergesHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateUsageStats(ctx, StatsPatch{
		WordsLearnedHistory: map[string]int{"2025-06-01": 2, "2025-06-02": 1},
	})
	require.NoError(t, err)

	snap := &Snapshot{
		Stats: &Stats{WordsLearnedHistory: map[string]int{"2025-06-02": 5, "2025-06-03": 4}},
	}
	_, err = s.ImportSnapshot(ctx, snap)
	require.NoError(t, err)

	stats, err := s.UsageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.WordsLearnedHistory["2025-06-01"], "untouched day kept")
	assert.Equal(t, 5, stats.WordsLearnedHistory["2025-06-02"], "incoming value overwrites")
	assert.Equal(t, 4, stats.WordsLearnedHistory["2025-06-03"], "new day merged")
}

func TestImportToleratesPartialSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.ImportSnapshot(ctx, &Snapshot{
		Vocabulary: []VocabularyItem{{ID: "only-1", Word: "solo"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	sessions, err := s.ChatSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
