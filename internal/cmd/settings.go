// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/output"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func newSettingsCmd(cfg *config.Config, docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and update settings",
	}

	cmd.AddCommand(newSettingsShowCmd(docs))
	cmd.AddCommand(newSettingsSetCmd(docs))

	return cmd
}

func newSettingsShowCmd(docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			settings, err := docs.Settings(cmd.Context())
			if err != nil {
				return err
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(settings)
			}

			fmt.Printf("Daily goal:    %d words\n", settings.DailyGoal)
			fmt.Printf("Gemini key:    %s\n", maskKey(settings.APIKeys.Gemini))
			fmt.Printf("OpenAI key:    %s\n", maskKey(settings.APIKeys.OpenAI))
			fmt.Printf("Deepgram key:  %s\n", maskKey(settings.APIKeys.Deepgram))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newSettingsSetCmd(docs *vocab.DocumentStore) *cobra.Command {
	var geminiKey string
	var openaiKey string
	var deepgramKey string
	var dailyGoal int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		Long: `Update one or more settings. Unspecified settings keep their
current value.

Examples:
  englishmate settings set --daily-goal 10
  englishmate settings set --gemini-key AIza...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := docs.Settings(cmd.Context())
			if err != nil {
				return err
			}

			var patch vocab.SettingsPatch

			// Keys are stored as one record, so start from the current
			// values and overwrite only the flags that were given.
			if cmd.Flags().Changed("gemini-key") || cmd.Flags().Changed("openai-key") || cmd.Flags().Changed("deepgram-key") {
				keys := current.APIKeys
				if cmd.Flags().Changed("gemini-key") {
					keys.Gemini = geminiKey
				}
				if cmd.Flags().Changed("openai-key") {
					keys.OpenAI = openaiKey
				}
				if cmd.Flags().Changed("deepgram-key") {
					keys.Deepgram = deepgramKey
				}
				patch.APIKeys = &keys
			}
			if cmd.Flags().Changed("daily-goal") {
				if dailyGoal < 1 {
					return fmt.Errorf("daily goal must be at least 1")
				}
				patch.DailyGoal = &dailyGoal
			}

			if patch.APIKeys == nil && patch.DailyGoal == nil {
				return fmt.Errorf("nothing to update; see 'englishmate settings set --help'")
			}

			if _, err := docs.UpdateSettings(cmd.Context(), patch); err != nil {
				return err
			}

			fmt.Println("Settings updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&geminiKey, "gemini-key", "", "Gemini API key")
	cmd.Flags().StringVar(&openaiKey, "openai-key", "", "OpenAI API key")
	cmd.Flags().StringVar(&deepgramKey, "deepgram-key", "", "Deepgram API key")
	cmd.Flags().IntVar(&dailyGoal, "daily-goal", 0, "Daily word goal")

	return cmd
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
