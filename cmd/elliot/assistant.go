package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elliot-ia/elliot/internal/chat"
	"github.com/elliot-ia/elliot/internal/cli"
	"github.com/elliot-ia/elliot/internal/gematria"
	"github.com/elliot-ia/elliot/internal/responder"
)

func newAskCommand() *cobra.Command {
	output := OutputText
	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Ask the assistant a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			resp := responder.NewSelector(dict).Select(strings.Join(args, " "))
			return printRecord(cmd.OutOrStdout(), output, resp, func() error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
				return err
			})
		},
	}
	cmd.Flags().Var(&output, "output", "Output format. Options: text, json, yaml")
	return cmd
}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat with the assistant",
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

			chatCLI := cli.NewChatCLI(chat.NewSession(dict), cfg.Outputs.Directory, os.Stdin, cmd.OutOrStdout())
			return chatCLI.Start(cmd.Context())
		},
	}
}

func newGematriaCommand() *cobra.Command {
	var reduce bool
	cmd := &cobra.Command{
		Use:   "gematria <text...>",
		Short: "Calculate the simple gematria of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			result := chat.NewSession(dict).Calculate(strings.Join(args, " "))
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(w, result.Text); err != nil {
				return err
			}
			if reduce && result.Word != "" {
				if _, err := fmt.Fprintf(w, "Redução: %d\n%s\n",
					gematria.Reduce(result.Gematria),
					gematria.Interpret(result.Gematria),
				); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reduce, "reduce", false, "Also print the digit reduction and its interpretation")
	return cmd
}
