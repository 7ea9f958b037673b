// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/programmerraja/englishMate/internal/store"
)

// legacyWord is the pre-1.0 saved-word record: a flat array of these
// lived under the "savedWords" key. Timestamp is Unix milliseconds.
type legacyWord struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Timestamp  int64  `json:"timestamp"`
}

// initialize runs when no structured document exists yet: either
// migrate the legacy saved-words array or start from defaults. The new
// document is persisted before it is returned. Callers must hold s.mu.
func (s *DocumentStore) initialize(ctx context.Context) (*Document, error) {
	doc := defaultDocument()

	data, err := s.kv.Get(ctx, legacyKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Fresh installation.
	case err != nil:
		return nil, fmt.Errorf("get legacy words: %w", err)
	default:
		var words []legacyWord
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("unmarshal legacy words: %w", err)
		}
		for _, w := range words {
			doc.Vocabulary = append(doc.Vocabulary, migrateLegacyWord(w, s.now()))
		}
		s.log.Info("migrated legacy saved words", zap.Int("count", len(words)))
	}

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// migrateLegacyWord maps a legacy record to a VocabularyItem. The
// legacy definition becomes the meaning, and the saved-at timestamp
// seeds the review stats when present.
func migrateLegacyWord(w legacyWord, now time.Time) VocabularyItem {
	savedAt := now
	if w.Timestamp > 0 {
		savedAt = time.UnixMilli(w.Timestamp)
	}
	return VocabularyItem{
		ID:      uuid.NewString(),
		Word:    w.Word,
		Meaning: w.Definition,
		Example: w.Example,
		Tags:    []string{},
		Stats: ItemStats{
			PracticedAt:     savedAt,
			NextReviewDate:  savedAt,
			ConfidenceLevel: 1,
		},
	}
}

// backfill fills in fields missing from documents written by older
// schema revisions. It reports whether anything changed, in which case
// the caller persists before returning the document.
func backfill(doc *Document) bool {
	changed := false
	if doc.Vocabulary == nil {
		doc.Vocabulary = []VocabularyItem{}
		changed = true
	}
	if doc.ChatSessions == nil {
		doc.ChatSessions = []ChatSession{}
		changed = true
	}
	if doc.UserSettings.DailyGoal == 0 {
		doc.UserSettings.DailyGoal = DefaultDailyGoal
		changed = true
	}
	if doc.Stats.WordsLearnedHistory == nil {
		doc.Stats.WordsLearnedHistory = map[string]int{}
		changed = true
	}
	return changed
}
