package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadrill/internal/definition"
	"github.com/at-ishikawa/vocadrill/internal/dictionary"
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Look up words in the dictionary",
	}

	rootCommand.AddCommand(&cobra.Command{
		Use:   "lookup <word>",
		Short: "Show a word's definition, related words and examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	})
	rootCommand.AddCommand(newDictionarySimplifyCommand())
	return rootCommand
}

func newDictionarySimplifyCommand() *cobra.Command {
	level := definition.LevelSimplified
	command := &cobra.Command{
		Use:   "simplify <word>",
		Short: "Show a word's definition at a simplification level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookup(cmd, args[0])
			if err != nil {
				return err
			}
			rendered, ok := definition.NewSimplifier(nil).Render(entry.Definition, level)
			if !ok || rendered == "" {
				return fmt.Errorf("%s has no Chinese definition", entry.Word)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	command.Flags().Var(&level, "level", fmt.Sprintf("Simplification level. Possible values are %v", definition.AllLevels))
	return command
}

func lookup(cmd *cobra.Command, word string) (dictionary.Entry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return dictionary.Entry{}, err
	}
	store, closeStore := openStore(cmd.Context(), cfg)
	defer func() {
		_ = closeStore()
	}()

	entry, ok := store.Lookup(word)
	if !ok {
		return dictionary.Entry{}, storeUnavailable(store, fmt.Errorf("%s is not in the dictionary", word))
	}
	return entry, nil
}

func printEntry(w io.Writer, entry dictionary.Entry) {
	_, _ = fmt.Fprintln(w, entry.Word)
	if extracted, ok := definition.Extract(entry.Definition); ok && extracted != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", extracted)
	} else {
		_, _ = fmt.Fprintf(w, "  %s\n", entry.Definition)
	}
	if len(entry.RelatedWords) > 0 {
		_, _ = fmt.Fprintf(w, "  Related: %s\n", strings.Join(entry.RelatedWords, ", "))
	}
	if entry.ExampleSentences != "" {
		_, _ = fmt.Fprintf(w, "  Example: %s\n", entry.ExampleSentences)
	}
}
