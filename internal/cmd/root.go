// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/dictionary"
	"github.com/programmerraja/englishMate/internal/vocab"
)

// NewRootCmd builds the englishmate command tree. Subcommands share the
// document store and configuration; each constructor wires its own flags.
func NewRootCmd(cfg *config.Config, docs *vocab.DocumentStore, dict *dictionary.Client, log *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "englishmate",
		Short: "Build your English vocabulary",
		Long: `englishMate keeps a personal vocabulary notebook: look up words,
save them with definitions and examples, review them on a spaced
schedule, chat with an AI tutor, and track daily streaks.

Data lives in a single local database and can be exported to or
imported from JSON snapshots.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLookupCmd(docs, dict))
	rootCmd.AddCommand(newWordCmd(cfg, docs))
	rootCmd.AddCommand(newChatCmd(cfg, docs, log))
	rootCmd.AddCommand(newSettingsCmd(cfg, docs))
	rootCmd.AddCommand(newStatsCmd(cfg, docs))
	rootCmd.AddCommand(newExportCmd(cfg, docs))
	rootCmd.AddCommand(newImportCmd(cfg, docs))

	return rootCmd
}

// shortID abbreviates generated ids for table display. Imported or
// migrated items may carry ids shorter than the abbreviation.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
