package main

import (
	"github.com/spf13/cobra"

	"github.com/dsablic/licenseid/internal/mcpserver"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine as Model Context Protocol tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			return mcpserver.Serve(cmd.Context(), e, version)
		},
	}
}
