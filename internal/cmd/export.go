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

func newExportCmd(cfg *config.Config, docs *vocab.DocumentStore) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export vocabulary and chats to a JSON snapshot",
		Long: `Export your vocabulary, chat sessions and learning stats as JSON.
API keys and other settings are never included.

Examples:
  englishmate export                    # write to stdout
  englishmate export -o backup.json     # write to a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := docs.ExportSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			data = append(data, '\n')

			if outFile == "" {
				_, err := os.Stdout.Write(data)
				return err
			}

			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			fmt.Printf("Exported %d word(s) to %s\n", len(snap.Vocabulary), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file (default stdout)")

	return cmd
}
