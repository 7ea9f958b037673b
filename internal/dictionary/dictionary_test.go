// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {
    "word": "hello",
    "phonetic": "",
    "phonetics": [
      {"text": "/həˈləʊ/", "audio": ""},
      {"text": "/həˈloʊ/", "audio": "https://example.com/hello.mp3"}
    ],
    "meanings": [
      {
        "partOfSpeech": "noun",
        "definitions": [
          {"definition": "A greeting.", "example": "she waved hello"}
        ]
      },
      {
        "partOfSpeech": "verb",
        "definitions": [{"definition": "To say hello."}]
      }
    ]
  }
]`

func TestLookupMapsFirstMeaning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, nil)
	def, err := c.Lookup(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", def.Word)
	assert.Equal(t, "/həˈləʊ/", def.Phonetic, "first phonetic with text wins")
	assert.Equal(t, "https://example.com/hello.mp3", def.Audio)
	assert.Equal(t, "noun", def.PartOfSpeech)
	assert.Equal(t, "A greeting.", def.Definition)
	assert.Equal(t, "she waved hello", def.Example)
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, nil)
	_, err := c.Lookup(context.Background(), "zzzz")
	require.ErrorIs(t, err, ErrWordNotFound)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, nil)
	_, err := c.Lookup(context.Background(), "hello")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWordNotFound)
}

func TestLookupFallbackFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"bare","meanings":[]}]`))
	}))
	defer srv.Close()

	c := NewClientWithURL(srv.URL, nil)
	def, err := c.Lookup(context.Background(), "bare")
	require.NoError(t, err)
	assert.Equal(t, "unknown", def.PartOfSpeech)
	assert.Equal(t, "No definition available", def.Definition)
}
