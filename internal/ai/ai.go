// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

// Package ai provides chat-completion clients for the tutor providers.
package ai

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned before any request when a provider has
// no configured key.
var ErrMissingAPIKey = errors.New("api key is missing")

// Message is one turn of a conversation sent to a provider.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// Client generates a reply to a message history. Implementations carry
// their own credentials and model choice.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
