package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elliot-ia/elliot/internal/database"
	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/gematria"
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Dictionary of word meanings",
	}
	output := OutputText
	rootCommand.PersistentFlags().Var(&output, "output", "Output format. Options: text, json, yaml")

	rootCommand.AddCommand(&cobra.Command{
		Use:   "lookup <word>",
		Short: "Show the meaning and gematria of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			word := args[0]
			entry, ok := dict.Lookup(word)
			if !ok {
				return fmt.Errorf("word %q is not in the dictionary", word)
			}
			w := cmd.OutOrStdout()
			return printRecord(w, output, map[string]dictionary.Entry{dictionary.Key(word): entry}, func() error {
				if _, err := fmt.Fprintf(w, "%s\nSignificado: %s\nGematria Simples: %d\n", dictionary.Key(word), entry.Meaning, gematria.Sum(word)); err != nil {
					return err
				}
				if entry.HasGematria() {
					if _, err := fmt.Fprintf(w, "Gematria exata: %d\n", *entry.Gematria); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every word of the dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return printRecord(w, output, dict.Entries(), func() error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, word := range dict.Words() {
					entry, _ := dict.Lookup(word)
					exact := "-"
					if entry.HasGematria() {
						exact = fmt.Sprint(*entry.Gematria)
					}
					if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", word, gematria.Sum(word), exact, entry.Meaning); err != nil {
						return err
					}
				}
				return tw.Flush()
			})
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write the loaded dictionary to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := dictionary.WriteYAMLFile(args[0], dict); err != nil {
				return fmt.Errorf("dictionary.WriteYAMLFile() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d words written to %s\n", dict.Len(), args[0])
			return err
		},
	})

	rootCommand.AddCommand(newDictionaryImportCommand())
	return rootCommand
}

func newDictionaryImportCommand() *cobra.Command {
	var (
		file           string
		dryRun         bool
		updateExisting bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML dictionary into the MySQL database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dict, err := dictionary.Default()
			if file != "" {
				dict, err = dictionary.ReadYAMLFile(file)
			}
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.Ping(cmd.Context(), db, cfg.Database.ConnectAttempts, database.DefaultPingDelay); err != nil {
				return fmt.Errorf("database.Ping() > %w", err)
			}
			if !dryRun {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return fmt.Errorf("database.Migrate() > %w", err)
				}
			}

			importer := dictionary.NewImporter(db, cmd.OutOrStdout())
			result, err := importer.Import(cmd.Context(), dict, dictionary.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			})
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "new: %d, updated: %d, skipped: %d\n", result.New, result.Updated, result.Skipped)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML dictionary to import. The embedded dictionary is used when empty")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the changes without writing them")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update words whose meaning or gematria changed")
	return cmd
}
