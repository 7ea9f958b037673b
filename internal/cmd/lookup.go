// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/programmerraja/englishMate/internal/dictionary"
	"github.com/programmerraja/englishMate/internal/output"
	"github.com/programmerraja/englishMate/internal/vocab"
)

func newLookupCmd(docs *vocab.DocumentStore, dict *dictionary.Client) *cobra.Command {
	var out output.Options
	var save bool

	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word in the dictionary",
		Long: `Look up a word's definition, pronunciation and example usage.

Examples:
  englishmate lookup serendipity
  englishmate lookup ephemeral --save   # look up and save in one step`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			def, err := dict.Lookup(cmd.Context(), args[0])
			if errors.Is(err, dictionary.ErrWordNotFound) {
				return fmt.Errorf("no dictionary entry for %q", args[0])
			}
			if err != nil {
				return err
			}

			if out.Is(output.OutputJSON) {
				if err := output.JSON(def); err != nil {
					return err
				}
			} else {
				fmt.Printf("%s  %s\n", def.Word, def.Phonetic)
				fmt.Printf("  (%s) %s\n", def.PartOfSpeech, def.Definition)
				if def.Example != "" {
					fmt.Printf("  e.g. %s\n", def.Example)
				}
			}

			if !save {
				return nil
			}

			item, err := docs.AddVocabulary(cmd.Context(), vocab.VocabularyInput{
				Word:    def.Word,
				Meaning: def.Definition,
				Example: def.Example,
			})
			if errors.Is(err, vocab.ErrDuplicateWord) {
				fmt.Printf("\n%q is already in your vocabulary.\n", def.Word)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("\nSaved %q (%s)\n", item.Word, item.ID)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	cmd.Flags().BoolVar(&save, "save", false, "Save the word to your vocabulary")

	return cmd
}
