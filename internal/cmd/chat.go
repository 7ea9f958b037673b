// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/programmerraja/englishMate/internal/ai"
	"github.com/programmerraja/englishMate/internal/config"
	"github.com/programmerraja/englishMate/internal/output"
	"github.com/programmerraja/englishMate/internal/vocab"
)

// tutorPrompt seeds every new conversation so the model stays on topic.
const tutorPrompt = `You are an English tutor helping a learner build vocabulary.
Explain words simply, give example sentences, and gently correct mistakes.`

func newChatCmd(cfg *config.Config, docs *vocab.DocumentStore, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the AI tutor",
	}

	cmd.AddCommand(newChatNewCmd(docs))
	cmd.AddCommand(newChatListCmd(docs))
	cmd.AddCommand(newChatShowCmd(docs))
	cmd.AddCommand(newChatSendCmd(docs, log))
	cmd.AddCommand(newChatRenameCmd(docs))
	cmd.AddCommand(newChatDeleteCmd(docs))

	return cmd
}

func newChatNewCmd(docs *vocab.DocumentStore) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Start a new chat session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := "New chat"
			if len(args) == 1 {
				title = args[0]
			}

			p := vocab.Provider(provider)
			if p != vocab.ProviderGemini && p != vocab.ProviderOpenAI {
				return fmt.Errorf("unknown provider %q (use gemini or openai)", provider)
			}

			session, err := docs.CreateChatSession(cmd.Context(), title, p)
			if err != nil {
				return err
			}

			fmt.Printf("Started session %q (%s)\n", session.Title, session.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", string(vocab.ProviderGemini), "AI provider (gemini or openai)")

	return cmd
}

func newChatListCmd(docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chat sessions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			sessions, err := docs.ChatSessions(cmd.Context())
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No chat sessions yet.")
				fmt.Println("Use 'englishmate chat new' to start one.")
				return nil
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(sessions)
			}

			table := output.NewTable("ID", "Title", "Provider", "Messages", "Last Active")
			for _, s := range sessions {
				table.AddRow(
					shortID(s.ID),
					truncate(s.Title, 40),
					string(s.Provider),
					fmt.Sprintf("%d", len(s.Messages)),
					s.LastUpdatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()

			fmt.Printf("\nTotal: %d session(s)\n", len(sessions))
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newChatShowCmd(docs *vocab.DocumentStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			session, err := resolveSession(cmd, docs, args[0])
			if err != nil {
				return err
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(session)
			}

			fmt.Printf("%s (%s, started %s)\n\n",
				session.Title, session.Provider, session.CreatedAt.Format("2006-01-02"))
			for _, m := range session.Messages {
				if m.Role == vocab.RoleSystem {
					continue
				}
				fmt.Printf("[%s] %s\n\n", m.Role, m.Content)
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)

	return cmd
}

func newChatSendCmd(docs *vocab.DocumentStore, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <id> <message>",
		Short: "Send a message in a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd, docs, args[0])
			if err != nil {
				return err
			}

			settings, err := docs.Settings(cmd.Context())
			if err != nil {
				return err
			}

			client, err := aiClientFor(session.Provider, settings.APIKeys, log)
			if err != nil {
				return err
			}

			session, err = docs.AppendMessage(cmd.Context(), session.ID, vocab.ChatMessage{
				Role:    vocab.RoleUser,
				Content: args[1],
			})
			if err != nil {
				return err
			}

			messages := make([]ai.Message, 0, len(session.Messages)+1)
			messages = append(messages, ai.Message{Role: "system", Content: tutorPrompt})
			for _, m := range session.Messages {
				messages = append(messages, ai.Message{Role: string(m.Role), Content: m.Content})
			}

			reply, err := client.Complete(cmd.Context(), messages)
			if err != nil {
				return fmt.Errorf("get tutor reply: %w", err)
			}

			if _, err := docs.AppendMessage(cmd.Context(), session.ID, vocab.ChatMessage{
				Role:    vocab.RoleAssistant,
				Content: reply,
			}); err != nil {
				return err
			}

			fmt.Println(reply)
			return nil
		},
	}
	return cmd
}

func newChatRenameCmd(docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a chat session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd, docs, args[0])
			if err != nil {
				return err
			}

			title := args[1]
			session, err = docs.UpdateChatSession(cmd.Context(), session.ID, vocab.ChatSessionPatch{
				Title: &title,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Renamed session to %q\n", session.Title)
			return nil
		},
	}
	return cmd
}

func newChatDeleteCmd(docs *vocab.DocumentStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd, docs, args[0])
			if err != nil {
				return err
			}
			if err := docs.DeleteChatSession(cmd.Context(), session.ID); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
	return cmd
}

// aiClientFor picks the provider client from stored API keys.
func aiClientFor(provider vocab.Provider, keys vocab.APIKeys, log *zap.Logger) (ai.Client, error) {
	switch provider {
	case vocab.ProviderOpenAI:
		if keys.OpenAI == "" {
			return nil, fmt.Errorf("no OpenAI API key set; run 'englishmate settings set --openai-key <key>'")
		}
		return ai.NewOpenAIClient(keys.OpenAI, log), nil
	case vocab.ProviderGemini:
		if keys.Gemini == "" {
			return nil, fmt.Errorf("no Gemini API key set; run 'englishmate settings set --gemini-key <key>'")
		}
		return ai.NewGeminiClient(keys.Gemini, log), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// resolveSession accepts a full session ID or a unique ID prefix.
func resolveSession(cmd *cobra.Command, docs *vocab.DocumentStore, ref string) (*vocab.ChatSession, error) {
	sessions, err := docs.ChatSessions(cmd.Context())
	if err != nil {
		return nil, err
	}

	var match *vocab.ChatSession
	for i := range sessions {
		s := &sessions[i]
		if s.ID == ref {
			return s, nil
		}
		if len(ref) >= 4 && len(s.ID) >= len(ref) && s.ID[:len(ref)] == ref {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix %q", ref)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no chat session matches %q", ref)
	}
	return match, nil
}
