// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewIntervalDoubles(t *testing.T) {
	assert.Equal(t, 1, reviewInterval(0), "clamped to lowest level")
	assert.Equal(t, 1, reviewInterval(1))
	assert.Equal(t, 2, reviewInterval(2))
	assert.Equal(t, 4, reviewInterval(3))
	assert.Equal(t, 8, reviewInterval(4))
	assert.Equal(t, 16, reviewInterval(5))
	assert.Equal(t, 16, reviewInterval(9), "clamped to highest level")
}

func TestReviewUpdatesItemStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	item, err := s.AddVocabulary(ctx, VocabularyInput{Word: "resilient"})
	require.NoError(t, err)

	reviewed, err := s.ReviewVocabulary(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, reviewed.Stats.ConfidenceLevel)
	assert.Equal(t, now, reviewed.Stats.PracticedAt)
	assert.Equal(t, now.AddDate(0, 0, 4), reviewed.Stats.NextReviewDate)
}

func TestReviewClampsStoredConfidence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	item, err := s.AddVocabulary(ctx, VocabularyInput{Word: "tenacious"})
	require.NoError(t, err)

	// The stored level must agree with the computed interval even for
	// out-of-range input.
	reviewed, err := s.ReviewVocabulary(ctx, item.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, reviewed.Stats.ConfidenceLevel)
	assert.Equal(t, now.AddDate(0, 0, 16), reviewed.Stats.NextReviewDate)

	reviewed, err = s.ReviewVocabulary(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, reviewed.Stats.ConfidenceLevel)
	assert.Equal(t, now.AddDate(0, 0, 1), reviewed.Stats.NextReviewDate)
}

func TestReviewMissingID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ReviewVocabulary(context.Background(), "missing", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReviewStreakTransitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clock := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	item, err := s.AddVocabulary(ctx, VocabularyInput{Word: "streak"})
	require.NoError(t, err)

	// First ever practice starts the streak.
	_, err = s.ReviewVocabulary(ctx, item.ID, 2)
	require.NoError(t, err)
	stats, _ := s.UsageStats(ctx)
	assert.Equal(t, 1, stats.Streak)
	require.NotNil(t, stats.LastPracticeDate)

	// Same-day repeat holds the streak.
	clock = clock.Add(2 * time.Hour)
	_, err = s.ReviewVocabulary(ctx, item.ID, 3)
	require.NoError(t, err)
	stats, _ = s.UsageStats(ctx)
	assert.Equal(t, 1, stats.Streak)

	// Next-day practice increments it.
	clock = clock.AddDate(0, 0, 1)
	_, err = s.ReviewVocabulary(ctx, item.ID, 3)
	require.NoError(t, err)
	stats, _ = s.UsageStats(ctx)
	assert.Equal(t, 2, stats.Streak)

	// A gap resets it to 1.
	clock = clock.AddDate(0, 0, 3)
	_, err = s.ReviewVocabulary(ctx, item.ID, 4)
	require.NoError(t, err)
	stats, _ = s.UsageStats(ctx)
	assert.Equal(t, 1, stats.Streak)
}
