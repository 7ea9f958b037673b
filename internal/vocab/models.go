// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package vocab

import (
	"time"
)

// Provider identifies which AI backend a chat session talks to.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// DefaultDailyGoal is the number of new words a user aims to save per day.
const DefaultDailyGoal = 5

// ItemStats holds the spaced-repetition state of a vocabulary item.
type ItemStats struct {
	PracticedAt     time.Time `json:"practicedAt"`
	NextReviewDate  time.Time `json:"nextReviewDate"`
	ConfidenceLevel int       `json:"confidenceLevel"`
}

// VocabularyItem is a saved word. Word is unique within the document
// under case-insensitive comparison.
type VocabularyItem struct {
	ID      string    `json:"id"`
	Word    string    `json:"word"`
	Meaning string    `json:"meaning"`
	Example string    `json:"example,omitempty"`
	Notes   string    `json:"notes,omitempty"`
	Tags    []string  `json:"tags"`
	Stats   ItemStats `json:"stats"`
}

// ChatMessage is one turn in a chat session. Messages are appended,
// never edited or removed.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatSession is an ordered conversation with the AI tutor.
type ChatSession struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Provider      Provider      `json:"provider"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastUpdatedAt time.Time     `json:"lastUpdatedAt"`
	Messages      []ChatMessage `json:"messages"`
}

// APIKeys holds provider credentials. The deepgram key is stored for
// the speech features of the companion apps; nothing in this tool
// consumes it.
type APIKeys struct {
	Deepgram string `json:"deepgram"`
	Gemini   string `json:"gemini"`
	OpenAI   string `json:"openai"`
}

// UserSettings is the settings singleton.
type UserSettings struct {
	APIKeys   APIKeys `json:"apiKeys"`
	DailyGoal int     `json:"dailyGoal"`
}

// Stats is the usage-stats singleton. WordsLearnedHistory maps a
// "YYYY-MM-DD" day to the number of words saved that day.
type Stats struct {
	Streak              int            `json:"streak"`
	LastPracticeDate    *time.Time     `json:"lastPracticeDate"`
	WordsLearnedHistory map[string]int `json:"wordsLearnedHistory"`
}

// Document is the single persisted JSON structure holding all
// application state. Vocabulary keeps most-recently-added order;
// ChatSessions has no stored order guarantee.
type Document struct {
	Vocabulary   []VocabularyItem `json:"vocabulary"`
	ChatSessions []ChatSession    `json:"chatSessions"`
	UserSettings UserSettings     `json:"userSettings"`
	Stats        Stats            `json:"stats"`
}

// DayKey formats t as the history key for its calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func defaultDocument() *Document {
	return &Document{
		Vocabulary:   []VocabularyItem{},
		ChatSessions: []ChatSession{},
		UserSettings: UserSettings{DailyGoal: DefaultDailyGoal},
		Stats:        Stats{WordsLearnedHistory: map[string]int{}},
	}
}

// VocabularyInput is the caller-supplied part of a new vocabulary item.
// Zero fields receive defaults; a non-empty ID or a non-nil Stats
// overrides the generated values.
type VocabularyInput struct {
	ID      string
	Word    string
	Meaning string
	Example string
	Notes   string
	Tags    []string
	Stats   *ItemStats
}

// VocabularyPatch updates an existing item. Nil fields keep the current
// value; Stats replaces the nested record wholesale.
type VocabularyPatch struct {
	Meaning *string
	Example *string
	Notes   *string
	Tags    *[]string
	Stats   *ItemStats
}

// ChatSessionPatch updates a session's fields. LastUpdatedAt is always
// refreshed regardless of which fields are set.
type ChatSessionPatch struct {
	Title    *string
	Provider *Provider
}

// SettingsPatch merges onto the settings singleton. APIKeys replaces
// the whole key record, matching the document's shallow-merge contract.
type SettingsPatch struct {
	APIKeys   *APIKeys
	DailyGoal *int
}

// StatsPatch merges onto the stats singleton. WordsLearnedHistory, when
// non-nil, replaces the whole map.
type StatsPatch struct {
	Streak              *int
	LastPracticeDate    *time.Time
	WordsLearnedHistory map[string]int
}

func cloneItem(it VocabularyItem) VocabularyItem {
	out := it
	out.Tags = append([]string(nil), it.Tags...)
	return out
}

func cloneSession(s ChatSession) ChatSession {
	out := s
	out.Messages = append([]ChatMessage(nil), s.Messages...)
	return out
}

func cloneStats(st Stats) Stats {
	out := st
	if st.LastPracticeDate != nil {
		d := *st.LastPracticeDate
		out.LastPracticeDate = &d
	}
	out.WordsLearnedHistory = make(map[string]int, len(st.WordsLearnedHistory))
	for k, v := range st.WordsLearnedHistory {
		out.WordsLearnedHistory[k] = v
	}
	return out
}
