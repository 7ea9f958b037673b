// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"fmt"
)

// clampConfidence bounds a confidence level to the valid 1..5 range.
func clampConfidence(confidence int) int {
	if confidence < 1 {
		return 1
	}
	if confidence > 5 {
		return 5
	}
	return confidence
}

// reviewInterval maps a confidence level to the days until the next
// review. Confidence doubles the interval per level: 1, 2, 4, 8, 16.
func reviewInterval(confidence int) int {
	return 1 << (clampConfidence(confidence) - 1)
}

// ReviewVocabulary records a practice attempt on the item with the
// given id: its stats are replaced with the new confidence level and a
// next review date derived from it, and the global streak advances —
// incremented when the previous practice day was yesterday, kept on a
// same-day repeat, reset to 1 after a gap.
func (s *DocumentStore) ReviewVocabulary(ctx context.Context, id string, confidence int) (*VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	confidence = clampConfidence(confidence)

	for i := range doc.Vocabulary {
		if doc.Vocabulary[i].ID != id {
			continue
		}
		now := s.now()
		it := &doc.Vocabulary[i]
		it.Stats = ItemStats{
			PracticedAt:     now,
			NextReviewDate:  now.AddDate(0, 0, reviewInterval(confidence)),
			ConfidenceLevel: confidence,
		}

		switch {
		case doc.Stats.LastPracticeDate == nil:
			doc.Stats.Streak = 1
		case DayKey(*doc.Stats.LastPracticeDate) == DayKey(now):
			// Same-day repeat, streak unchanged.
		case DayKey(*doc.Stats.LastPracticeDate) == DayKey(now.AddDate(0, 0, -1)):
			doc.Stats.Streak++
		default:
			doc.Stats.Streak = 1
		}
		doc.Stats.LastPracticeDate = &now

		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		out := cloneItem(*it)
		return &out, nil
	}
	return nil, fmt.Errorf("vocabulary item %s: %w", id, ErrNotFound)
}
