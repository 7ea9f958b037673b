// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

// Package vocab implements the document store: a single JSON document
// holding vocabulary, chat sessions, settings, and stats, persisted
// whole through a key-value backend. Every mutation runs as
// load -> mutate -> save under one mutex, so concurrent calls cannot
// silently drop each other's writes.
package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/programmerraja/englishMate/internal/store"
)

const (
	// dbKey is the well-known key of the structured document.
	dbKey = "englishmate:db"
	// legacyKey held the pre-1.0 flat array of saved words.
	legacyKey = "savedWords"
)

// DocumentStore owns the persisted document. Construct one per backend
// with New and inject it into consumers; no other component may write
// the document.
type DocumentStore struct {
	kv  store.KVStore
	log *zap.Logger

	// mu serializes load-mutate-save at whole-document granularity.
	mu sync.Mutex

	// now is swapped in tests to pin dates.
	now func() time.Time
}

// New creates a DocumentStore over the given backend.
func New(kv store.KVStore, log *zap.Logger) *DocumentStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentStore{kv: kv, log: log, now: time.Now}
}

// load fetches the document, lazily initializing or migrating it.
// Callers must hold s.mu.
func (s *DocumentStore) load(ctx context.Context) (*Document, error) {
	data, err := s.kv.Get(ctx, dbKey)
	if errors.Is(err, store.ErrNotFound) {
		return s.initialize(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	// Forward migration on read: backfill fields added after older
	// schema revisions and persist before returning.
	if backfill(&doc) {
		s.log.Debug("backfilled document fields")
		if err := s.save(ctx, &doc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// save persists the whole document under the well-known key. Callers
// must hold s.mu.
func (s *DocumentStore) save(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.kv.Set(ctx, dbKey, data); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

// Vocabulary operations

// AddVocabulary stores a new word. It fails with ErrDuplicateWord when
// an item with the same word already exists (case-insensitive). The
// stored item is prepended, and today's wordsLearnedHistory entry is
// incremented.
func (s *DocumentStore) AddVocabulary(ctx context.Context, in VocabularyInput) (*VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, it := range doc.Vocabulary {
		if strings.EqualFold(it.Word, in.Word) {
			return nil, fmt.Errorf("%q: %w", in.Word, ErrDuplicateWord)
		}
	}

	now := s.now()
	item := VocabularyItem{
		ID:      in.ID,
		Word:    in.Word,
		Meaning: in.Meaning,
		Example: in.Example,
		Notes:   in.Notes,
		Tags:    append([]string{}, in.Tags...),
		Stats: ItemStats{
			PracticedAt:     now,
			NextReviewDate:  now,
			ConfidenceLevel: 1,
		},
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if in.Stats != nil {
		item.Stats = *in.Stats
	}

	doc.Vocabulary = append([]VocabularyItem{item}, doc.Vocabulary...)
	doc.Stats.WordsLearnedHistory[DayKey(now)]++

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Debug("vocabulary item added", zap.String("id", item.ID), zap.String("word", item.Word))
	out := cloneItem(item)
	return &out, nil
}

// Vocabulary returns all saved words, most recently added first.
func (s *DocumentStore) Vocabulary(ctx context.Context) ([]VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VocabularyItem, 0, len(doc.Vocabulary))
	for _, it := range doc.Vocabulary {
		out = append(out, cloneItem(it))
	}
	return out, nil
}

// UpdateVocabulary applies a patch to the item with the given id. Nil
// patch fields keep the current value; a non-nil Stats replaces the
// whole nested record.
func (s *DocumentStore) UpdateVocabulary(ctx context.Context, id string, patch VocabularyPatch) (*VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.Vocabulary {
		if doc.Vocabulary[i].ID != id {
			continue
		}
		it := &doc.Vocabulary[i]
		if patch.Meaning != nil {
			it.Meaning = *patch.Meaning
		}
		if patch.Example != nil {
			it.Example = *patch.Example
		}
		if patch.Notes != nil {
			it.Notes = *patch.Notes
		}
		if patch.Tags != nil {
			it.Tags = append([]string{}, (*patch.Tags)...)
		}
		if patch.Stats != nil {
			it.Stats = *patch.Stats
		}
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		out := cloneItem(*it)
		return &out, nil
	}
	return nil, fmt.Errorf("vocabulary item %s: %w", id, ErrNotFound)
}

// DeleteVocabulary removes the item with the given id. Deleting a
// missing id is a no-op, not an error.
func (s *DocumentStore) DeleteVocabulary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Vocabulary[:0]
	for _, it := range doc.Vocabulary {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	doc.Vocabulary = kept
	return s.save(ctx, doc)
}

// DueVocabulary returns items whose next review date is at or before
// the given time, most recently added first.
func (s *DocumentStore) DueVocabulary(ctx context.Context, at time.Time) ([]VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []VocabularyItem
	for _, it := range doc.Vocabulary {
		if !it.Stats.NextReviewDate.After(at) {
			out = append(out, cloneItem(it))
		}
	}
	return out, nil
}

// Chat session operations

// CreateChatSession creates an empty session and prepends it.
func (s *DocumentStore) CreateChatSession(ctx context.Context, title string, provider Provider) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := ChatSession{
		ID:            uuid.NewString(),
		Title:         title,
		Provider:      provider,
		CreatedAt:     now,
		LastUpdatedAt: now,
		Messages:      []ChatMessage{},
	}
	doc.ChatSessions = append([]ChatSession{session}, doc.ChatSessions...)

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Debug("chat session created", zap.String("id", session.ID), zap.String("provider", string(provider)))
	out := cloneSession(session)
	return &out, nil
}

// ChatSessions returns all sessions sorted by last update, newest
// first. The order is computed at read time; storage order carries no
// guarantee.
func (s *DocumentStore) ChatSessions(ctx context.Context) ([]ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ChatSession, 0, len(doc.ChatSessions))
	for _, sess := range doc.ChatSessions {
		out = append(out, cloneSession(sess))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt)
	})
	return out, nil
}

// ChatSession returns the session with the given id.
func (s *DocumentStore) ChatSession(ctx context.Context, id string) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, sess := range doc.ChatSessions {
		if sess.ID == id {
			out := cloneSession(sess)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("chat session %s: %w", id, ErrNotFound)
}

// UpdateChatSession applies a patch and refreshes LastUpdatedAt.
func (s *DocumentStore) UpdateChatSession(ctx context.Context, id string, patch ChatSessionPatch) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.ChatSessions {
		if doc.ChatSessions[i].ID != id {
			continue
		}
		sess := &doc.ChatSessions[i]
		if patch.Title != nil {
			sess.Title = *patch.Title
		}
		if patch.Provider != nil {
			sess.Provider = *patch.Provider
		}
		sess.LastUpdatedAt = s.now()
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		out := cloneSession(*sess)
		return &out, nil
	}
	return nil, fmt.Errorf("chat session %s: %w", id, ErrNotFound)
}

// AppendMessage appends a message to the session's sequence. Insertion
// order is display order. A missing message id is generated.
func (s *DocumentStore) AppendMessage(ctx context.Context, sessionID string, msg ChatMessage) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.ChatSessions {
		if doc.ChatSessions[i].ID != sessionID {
			continue
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		sess := &doc.ChatSessions[i]
		sess.Messages = append(sess.Messages, msg)
		sess.LastUpdatedAt = s.now()
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		out := cloneSession(*sess)
		return &out, nil
	}
	return nil, fmt.Errorf("chat session %s: %w", sessionID, ErrNotFound)
}

// DeleteChatSession removes the session if present.
func (s *DocumentStore) DeleteChatSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := doc.ChatSessions[:0]
	for _, sess := range doc.ChatSessions {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}
	doc.ChatSessions = kept
	return s.save(ctx, doc)
}

// Settings and stats

// Settings returns the settings singleton.
func (s *DocumentStore) Settings(ctx context.Context) (*UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := doc.UserSettings
	return &out, nil
}

// UpdateSettings merges a patch onto the settings singleton.
func (s *DocumentStore) UpdateSettings(ctx context.Context, patch SettingsPatch) (*UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if patch.APIKeys != nil {
		doc.UserSettings.APIKeys = *patch.APIKeys
	}
	if patch.DailyGoal != nil {
		doc.UserSettings.DailyGoal = *patch.DailyGoal
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	out := doc.UserSettings
	return &out, nil
}

// UsageStats returns the stats singleton.
func (s *DocumentStore) UsageStats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := cloneStats(doc.Stats)
	return &out, nil
}

// UpdateUsageStats merges a patch onto the stats singleton.
func (s *DocumentStore) UpdateUsageStats(ctx context.Context, patch StatsPatch) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if patch.Streak != nil {
		doc.Stats.Streak = *patch.Streak
	}
	if patch.LastPracticeDate != nil {
		d := *patch.LastPracticeDate
		doc.Stats.LastPracticeDate = &d
	}
	if patch.WordsLearnedHistory != nil {
		doc.Stats.WordsLearnedHistory = patch.WordsLearnedHistory
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	out := cloneStats(doc.Stats)
	return &out, nil
}
