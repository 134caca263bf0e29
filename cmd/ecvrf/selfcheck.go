package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

func (a *app) newSelfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Re-run the curve constant checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ed25519.SelfCheck(); err != nil {
				return err
			}

			a.log.Debug("curve constants verified")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
