package main

import (
	"fmt"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/common"
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the classification service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := newGateway()
			if err != nil {
				return err
			}

			if err := gw.Health(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError("Classification service unreachable: "+common.UserMessage(err)))
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Classification service is healthy"))
			return nil
		},
	}
}
