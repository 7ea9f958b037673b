// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/output"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func newWordCmd(cfg *config.Config, docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Manage saved vocabulary",
	}

	cmd.AddCommand(newWordAddCmd(docs))
	cmd.AddCommand(newWordListCmd(docs))
	cmd.AddCommand(newWordEditCmd(docs))
	cmd.AddCommand(newWordDeleteCmd(docs))
	cmd.AddCommand(newWordReviewCmd(docs))
	cmd.AddCommand(newWordDueCmd(docs))

	return cmd
}

// yamlWord is the file format accepted by 'word add --from-file'.
type yamlWord struct {
	Word    string   `yaml:"word"`
	Meaning string   `yaml:"meaning"`
	Example string   `yaml:"example"`
	Notes   string   `yaml:"notes"`
	Tags    []string `yaml:"tags"`
}

func newWordAddCmd(docs *vocab.DocumentStore) *cobra.Command {
	var meaning string
	var example string
	var notes string
	var tags []string
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add [word]",
		Short: "Save a word to your vocabulary",
		Long: `Save a word with its meaning to your vocabulary.

Examples:
  englishmate word add serendipity --meaning "a happy accident"
  englishmate word add petrichor -m "smell of rain" -e "the petrichor after the storm"
  englishmate word add --from-file words.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				return addFromFile(cmd, docs, fromFile)
			}
			if len(args) != 1 {
				return fmt.Errorf("expected a word argument (or --from-file)")
			}

			item, err := docs.AddVocabulary(cmd.Context(), vocab.VocabularyInput{
				Word:    args[0],
				Meaning: meaning,
				Example: example,
				Notes:   notes,
				Tags:    tags,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Saved %q (%s)\n", item.Word, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&meaning, "meaning", "m", "", "Meaning of the word")
	cmd.Flags().StringVarP(&example, "example", "e", "", "Example sentence")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Personal notes")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Tags (comma-separated)")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Add words in bulk from a YAML file")

	return cmd
}

func addFromFile(cmd *cobra.Command, docs *vocab.DocumentStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read word file: %w", err)
	}

	var words []yamlWord
	if err := yaml.Unmarshal(data, &words); err != nil {
		return fmt.Errorf("parse word file: %w", err)
	}

	added := 0
	for _, w := range words {
		_, err := docs.AddVocabulary(cmd.Context(), vocab.VocabularyInput{
			Word:    w.Word,
			Meaning: w.Meaning,
			Example: w.Example,
			Notes:   w.Notes,
			Tags:    w.Tags,
		})
		if errors.Is(err, vocab.ErrDuplicateWord) {
			fmt.Printf("Skipped %q: already saved\n", w.Word)
			continue
		}
		if err != nil {
			return err
		}
		added++
	}

	fmt.Printf("Added %d word(s) from %s\n", added, path)
	return nil
}

func newWordListCmd(docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options
	var tag string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved words",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			items, err := docs.Vocabulary(cmd.Context())
			if err != nil {
				return err
			}

			if tag != "" {
				filtered := items[:0]
				for _, it := range items {
					for _, t := range it.Tags {
						if strings.EqualFold(t, tag) {
							filtered = append(filtered, it)
							break
						}
					}
				}
				items = filtered
			}
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}

			if len(items) == 0 {
				fmt.Println("No words saved yet.")
				fmt.Println("Use 'englishmate word add <word>' or 'englishmate lookup <word> --save'.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(items)
			}

			table := output.NewTable("ID", "Word", "Meaning", "Confidence", "Next Review")
			for _, it := range items {
				table.AddRow(
					shortID(it.ID),
					it.Word,
					truncate(it.Meaning, 45),
					fmt.Sprintf("%d", it.Stats.ConfidenceLevel),
					it.Stats.NextReviewDate.Format("2006-01-02"),
				)
			}
			table.Render()

			fmt.Printf("\nTotal: %d word(s)\n", len(items))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Filter by tag")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit results")

	return cmd
}

func newWordEditCmd(docs *vocab.DocumentStore) *cobra.Command {
	var meaning string
	var example string
	var notes string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a saved word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch vocab.VocabularyPatch
			if cmd.Flags().Changed("meaning") {
				patch.Meaning = &meaning
			}
			if cmd.Flags().Changed("example") {
				patch.Example = &example
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			item, err := resolveAndUpdateWord(cmd, docs, args[0], patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %q\n", item.Word)
			return nil
		},
	}

	cmd.Flags().StringVarP(&meaning, "meaning", "m", "", "New meaning")
	cmd.Flags().StringVarP(&example, "example", "e", "", "New example sentence")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "New tags (replaces existing)")

	return cmd
}

func newWordDeleteCmd(docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveWordID(cmd, docs, args[0])
			if err != nil {
				return err
			}
			if err := docs.DeleteVocabulary(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
	return cmd
}

func newWordReviewCmd(docs *vocab.DocumentStore) *cobra.Command {
	var confidence int

	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Record a review of a word",
		Long: `Record a review with a confidence level from 1 (forgot it) to 5
(know it cold). The next review date moves further out the higher the
confidence, and your daily practice streak is updated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if confidence < 1 || confidence > 5 {
				return fmt.Errorf("confidence must be between 1 and 5")
			}

			id, err := resolveWordID(cmd, docs, args[0])
			if err != nil {
				return err
			}

			item, err := docs.ReviewVocabulary(cmd.Context(), id, confidence)
			if err != nil {
				return err
			}

			fmt.Printf("Reviewed %q. Next review: %s\n",
				item.Word, item.Stats.NextReviewDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&confidence, "confidence", "c", 0, "Confidence level 1-5 (required)")
	cmd.MarkFlagRequired("confidence")

	return cmd
}

func newWordDueCmd(docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List words due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			items, err := docs.DueVocabulary(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("Nothing due. Nice work.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(items)
			}

			table := output.NewTable("ID", "Word", "Meaning", "Last Practiced")
			for _, it := range items {
				last := "never"
				if !it.Stats.PracticedAt.IsZero() {
					last = it.Stats.PracticedAt.Format("2006-01-02")
				}
				table.AddRow(shortID(it.ID), it.Word, truncate(it.Meaning, 45), last)
			}
			table.Render()

			fmt.Printf("\n%d word(s) due for review\n", len(items))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

// resolveWordID accepts a full item ID, a unique ID prefix, or the word
// itself (case-insensitive).
func resolveWordID(cmd *cobra.Command, docs *vocab.DocumentStore, ref string) (string, error) {
	items, err := docs.Vocabulary(cmd.Context())
	if err != nil {
		return "", err
	}

	var match string
	for _, it := range items {
		if it.ID == ref || strings.EqualFold(it.Word, ref) {
			return it.ID, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", ref)
			}
			match = it.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no saved word matches %q", ref)
	}
	return match, nil
}

func resolveAndUpdateWord(cmd *cobra.Command, docs *vocab.DocumentStore, ref string, patch vocab.VocabularyPatch) (*vocab.VocabularyItem, error) {
	id, err := resolveWordID(cmd, docs, ref)
	if err != nil {
		return nil, err
	}
	return docs.UpdateVocabulary(cmd.Context(), id, patch)
}
