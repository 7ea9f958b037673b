// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

// Package dictionary looks up word definitions via the Free Dictionary
// API (api.dictionaryapi.dev).
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrWordNotFound is returned when the dictionary has no entry for a word.
var ErrWordNotFound = errors.New("word not found")

// Definition is the formatted lookup result: the first meaning of the
// first entry, which is usually the most relevant one.
type Definition struct {
	Word         string `json:"word"`
	Phonetic     string `json:"phonetic,omitempty"`
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
	Audio        string `json:"audio,omitempty"`
}

// Client fetches definitions from the Free Dictionary API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Client with the default API URL.
func NewClient(log *zap.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, log)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With(zap.String("client", "dictionary")),
	}
}

// Lookup fetches the definition of a word. A missing word yields
// ErrWordNotFound.
func (c *Client) Lookup(ctx context.Context, word string) (*Definition, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.log.Debug("dictionary request", zap.String("word", word))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%q: %w", word, ErrWordNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%q: %w", word, ErrWordNotFound)
	}

	def := mapEntry(entries[0])
	c.log.Debug("dictionary response", zap.String("word", def.Word), zap.String("partOfSpeech", def.PartOfSpeech))
	return def, nil
}

// apiEntry mirrors the relevant slice of the Free Dictionary response.
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func mapEntry(e apiEntry) *Definition {
	def := &Definition{
		Word:         e.Word,
		Phonetic:     e.Phonetic,
		PartOfSpeech: "unknown",
		Definition:   "No definition available",
	}
	for _, p := range e.Phonetics {
		if def.Phonetic == "" && p.Text != "" {
			def.Phonetic = p.Text
		}
		if def.Audio == "" && p.Audio != "" {
			def.Audio = p.Audio
		}
	}
	if len(e.Meanings) > 0 {
		m := e.Meanings[0]
		if m.PartOfSpeech != "" {
			def.PartOfSpeech = m.PartOfSpeech
		}
		if len(m.Definitions) > 0 {
			if m.Definitions[0].Definition != "" {
				def.Definition = m.Definitions[0].Definition
			}
			def.Example = m.Definitions[0].Example
		}
	}
	return def
}
