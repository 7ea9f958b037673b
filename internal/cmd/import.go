// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func newImportCmd(cfg *config.Config, docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot",
		Long: `Import words and chat sessions from a snapshot produced by
'englishmate export'. Words you already have (same id, or same word
ignoring case) are skipped; learning history is merged with the
snapshot winning on overlapping days.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			var snap vocab.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			added, err := docs.ImportSnapshot(cmd.Context(), &snap)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d new word(s) from %s\n", added, args[0])
			return nil
		},
	}
	return cmd
}
