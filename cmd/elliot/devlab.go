package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/devlab"
	"github.com/elliot-ia/elliot/internal/export"
)

// runWithBoard loads the configuration, opens the board and closes its store after fn.
func runWithBoard(ctx context.Context, fn func(cfg *config.Config, board *devlab.Board) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	board, store, err := openBoard(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("store.Close() > %w", closeErr)
		}
	}()
	return fn(cfg, board)
}

func newCommentsCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "comments",
		Short: "Visitor comments of the dev lab",
	}

	var author string
	addCommand := &cobra.Command{
		Use:   "add <message...>",
		Short: "Post a comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				comment, err := board.AddComment(cmd.Context(), author, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comentário publicado: %s\n", comment.ID)
				return err
			})
		},
	}
	addCommand.Flags().StringVar(&author, "author", "", "Author name. Defaults to the display name setting, then "+devlab.AnonymousAuthor)

	output := OutputText
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List comments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				comments, err := board.Comments(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				return printRecord(w, output, comments, func() error {
					return printComments(w, comments)
				})
			})
		},
	}
	listCommand.Flags().Var(&output, "output", "Output format. Options: text, json, yaml")

	format := export.FormatJSON
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export the whole dev lab board to the outputs directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(cfg *config.Config, board *devlab.Board) error {
				snapshot, err := board.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				path, err := export.WriteBoardFile(cfg.Outputs.Directory, snapshot, format)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Dados exportados: %s\n", path)
				return err
			})
		},
	}
	exportCommand.Flags().Var(&format, "format", "Export format. Options: json, xlsx")

	rootCommand.AddCommand(
		addCommand,
		listCommand,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a comment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
					if err := board.DeleteComment(cmd.Context(), args[0]); err != nil {
						return err
					}
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Comentário removido")
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every comment",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
					n, err := board.ClearComments(cmd.Context())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d comentários removidos\n", n)
					return err
				})
			},
		},
		exportCommand,
	)
	return rootCommand
}

func printComments(w io.Writer, comments []devlab.Comment) error {
	if len(comments) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum comentário ainda")
		return err
	}
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "[%s] %s (%s)\n%s\n\n", c.ID, c.Author, c.CreatedAt.Local().Format(time.DateTime), c.Message); err != nil {
			return err
		}
	}
	return nil
}

func newIdeasCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "ideas",
		Short: "Idea list of the dev lab",
	}

	var description string
	addCommand := &cobra.Command{
		Use:   "add <title...>",
		Short: "Suggest an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				idea, err := board.AddIdea(cmd.Context(), strings.Join(args, " "), description)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Ideia adicionada: %s\n", idea.ID)
				return err
			})
		},
	}
	addCommand.Flags().StringVar(&description, "description", "", "Longer description of the idea")

	output := OutputText
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List ideas, most voted first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				ideas, err := board.Ideas(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				return printRecord(w, output, ideas, func() error {
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					for _, idea := range ideas {
						if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\n", idea.ID, idea.Votes, idea.Title); err != nil {
							return err
						}
					}
					return tw.Flush()
				})
			})
		},
	}
	listCommand.Flags().Var(&output, "output", "Output format. Options: text, json, yaml")

	rootCommand.AddCommand(
		addCommand,
		listCommand,
		&cobra.Command{
			Use:   "vote <id>",
			Short: "Vote for an idea",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
					idea, err := board.VoteIdea(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d votos\n", idea.Title, idea.Votes)
					return err
				})
			},
		},
	)
	return rootCommand
}

func newSettingsCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "settings",
		Short: "Settings panel of the dev lab",
	}

	output := OutputYAML
	showCommand := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				settings, err := board.Settings(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				return printRecord(w, output, settings, func() error {
					_, err := fmt.Fprintf(w, "theme: %s\nnotifications: %t\nauto_save: %t\ndisplay_name: %s\n",
						settings.Theme, settings.Notifications, settings.AutoSave, settings.DisplayName)
					return err
				})
			})
		},
	}
	showCommand.Flags().Var(&output, "output", "Output format. Options: text, json, yaml")

	var (
		theme         string
		notifications bool
		autoSave      bool
		displayName   string
	)
	setCommand := &cobra.Command{
		Use:   "set",
		Short: "Change the settings given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
				settings, err := board.Settings(cmd.Context())
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if flags.Changed("theme") {
					settings.Theme = theme
				}
				if flags.Changed("notifications") {
					settings.Notifications = notifications
				}
				if flags.Changed("auto-save") {
					settings.AutoSave = autoSave
				}
				if flags.Changed("display-name") {
					settings.DisplayName = displayName
				}
				if err := board.SaveSettings(cmd.Context(), settings); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Configurações salvas")
				return err
			})
		},
	}
	setCommand.Flags().StringVar(&theme, "theme", "", "Theme. Options: dark, light")
	setCommand.Flags().BoolVar(&notifications, "notifications", true, "Enable notifications")
	setCommand.Flags().BoolVar(&autoSave, "auto-save", true, "Enable auto save")
	setCommand.Flags().StringVar(&displayName, "display-name", "", "Name shown on new comments")

	rootCommand.AddCommand(
		showCommand,
		setCommand,
		&cobra.Command{
			Use:   "toggle-theme",
			Short: "Switch between the dark and light themes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithBoard(cmd.Context(), func(_ *config.Config, board *devlab.Board) error {
					settings, err := board.ToggleTheme(cmd.Context())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\n", settings.Theme)
					return err
				})
			},
		},
	)
	return rootCommand
}
