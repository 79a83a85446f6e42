package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/sheetqr/sheetqr-go/internal/app"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the commands over HTTP for a front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := fx.New(app.Module(cfg))
			if err := a.Err(); err != nil {
				return err
			}
			a.Run()
			return nil
		},
	}

	cmd.Flags().String("addr", "127.0.0.1:1420", "Listen address")
	return cmd
}
