// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"context"
	"strings"
)

// Snapshot is the exportable subset of the document. User settings are
// excluded so backups never carry API keys.
type Snapshot struct {
	Vocabulary   []VocabularyItem `json:"vocabulary"`
	ChatSessions []ChatSession    `json:"chatSessions,omitempty"`
	Stats        *Stats           `json:"stats,omitempty"`
}

// ExportSnapshot returns the document minus user settings.
func (s *DocumentStore) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Vocabulary:   make([]VocabularyItem, 0, len(doc.Vocabulary)),
		ChatSessions: make([]ChatSession, 0, len(doc.ChatSessions)),
	}
	for _, it := range doc.Vocabulary {
		snap.Vocabulary = append(snap.Vocabulary, cloneItem(it))
	}
	for _, sess := range doc.ChatSessions {
		snap.ChatSessions = append(snap.ChatSessions, cloneSession(sess))
	}
	st := cloneStats(doc.Stats)
	snap.Stats = &st
	return snap, nil
}

// ImportSnapshot merges a snapshot into the current document and
// returns the number of newly added vocabulary items. Vocabulary items
// are skipped when their id or word (case-insensitive) already exists;
// chat sessions are skipped by id; incoming history entries overwrite
// same-date keys. Items are appended as-is — callers must supply
// well-formed data. Partial snapshots are tolerated. The document is
// persisted once after all merges.
func (s *DocumentStore) ImportSnapshot(ctx context.Context, snap *Snapshot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	haveID := make(map[string]bool, len(doc.Vocabulary))
	haveWord := make(map[string]bool, len(doc.Vocabulary))
	for _, it := range doc.Vocabulary {
		haveID[it.ID] = true
		haveWord[strings.ToLower(it.Word)] = true
	}

	added := 0
	for _, it := range snap.Vocabulary {
		if haveID[it.ID] || haveWord[strings.ToLower(it.Word)] {
			continue
		}
		doc.Vocabulary = append(doc.Vocabulary, cloneItem(it))
		haveID[it.ID] = true
		haveWord[strings.ToLower(it.Word)] = true
		added++
	}

	haveSession := make(map[string]bool, len(doc.ChatSessions))
	for _, sess := range doc.ChatSessions {
		haveSession[sess.ID] = true
	}
	for _, sess := range snap.ChatSessions {
		if haveSession[sess.ID] {
			continue
		}
		doc.ChatSessions = append(doc.ChatSessions, cloneSession(sess))
		haveSession[sess.ID] = true
	}

	if snap.Stats != nil {
		for day, count := range snap.Stats.WordsLearnedHistory {
			doc.Stats.WordsLearnedHistory[day] = count
		}
	}

	if err := s.save(ctx, doc); err != nil {
		return 0, err
	}
	return added, nil
}
