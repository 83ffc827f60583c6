package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elliot-ia/elliot/internal/network"
)

func newNetworkCommand() *cobra.Command {
	output := OutputText
	command := &cobra.Command{
		Use:   "network [name]",
		Short: "List the linked projects, or show one by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			projects := network.FromConfig(cfg.Network)
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				project, ok := projects.Find(args[0])
				if !ok {
					return fmt.Errorf("project %q is not in the network", args[0])
				}
				return printRecord(w, output, project, func() error {
					_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", project.Name, project.URL, project.Description)
					return err
				})
			}

			return printRecord(w, output, projects, func() error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, p := range projects {
					if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.URL, p.Description); err != nil {
						return err
					}
				}
				return tw.Flush()
			})
		},
	}
	command.Flags().Var(&output, "output", "Output format. Options: text, json, yaml")
	return command
}
