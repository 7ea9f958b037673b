// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/output"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func newStatsCmd(cfg *config.Config, docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options
	var history int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			ctx := cmd.Context()
			stats, err := docs.UsageStats(ctx)
			if err != nil {
				return err
			}
			settings, err := docs.Settings(ctx)
			if err != nil {
				return err
			}
			items, err := docs.Vocabulary(ctx)
			if err != nil {
				return err
			}
			due, err := docs.DueVocabulary(ctx, time.Now())
			if err != nil {
				return err
			}

			today := stats.WordsLearnedHistory[vocab.DayKey(time.Now())]

			if out.Is(output.OutputJSON) {
				return output.JSON(map[string]any{
					"streak":     stats.Streak,
					"totalWords": len(items),
					"dueWords":   len(due),
					"today":      today,
					"dailyGoal":  settings.DailyGoal,
					"history":    stats.WordsLearnedHistory,
				})
			}

			fmt.Printf("Streak:       %d day(s)\n", stats.Streak)
			fmt.Printf("Total words:  %d\n", len(items))
			fmt.Printf("Due today:    %d\n", len(due))
			fmt.Printf("Today:        %d / %d words", today, settings.DailyGoal)
			if today >= settings.DailyGoal {
				fmt.Print("  (goal met!)")
			}
			fmt.Println()

			if history > 0 && len(stats.WordsLearnedHistory) > 0 {
				days := make([]string, 0, len(stats.WordsLearnedHistory))
				for d := range stats.WordsLearnedHistory {
					days = append(days, d)
				}
				sort.Sort(sort.Reverse(sort.StringSlice(days)))
				if len(days) > history {
					days = days[:history]
				}

				fmt.Println()
				table := output.NewTable("Day", "Words")
				for _, d := range days {
					table.AddRow(d, fmt.Sprintf("%d", stats.WordsLearnedHistory[d]))
				}
				table.Render()
			}

			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().IntVar(&history, "history", 7, "Days of history to show (0 to hide)")

	return cmd
}
