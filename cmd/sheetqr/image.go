package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetqr/sheetqr-go/pkg/imagestore"
)

func newSaveImageCmd() *cobra.Command {
	var req imagestore.SaveImageRequest
	var dataFile string

	cmd := &cobra.Command{
		Use:   "save-image",
		Short: "Decode a base64 image and write it to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataFile != "" {
				raw, err := os.ReadFile(dataFile)
				if err != nil {
					return fmt.Errorf("failed to read data file: %w", err)
				}
				req.Data = string(raw)
			}

			msg, err := imagestore.Save(req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Directory, "dir", "", "Target directory")
	cmd.Flags().StringVar(&req.Filename, "name", "", "File name inside the directory")
	cmd.Flags().StringVar(&req.Data, "data", "", "Base64 data, optionally data URI prefixed")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Read the base64 data from a file")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	return cmd
}
