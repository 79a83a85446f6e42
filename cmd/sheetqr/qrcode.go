package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/pkg/qrcode"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr"
)

func newQRCodeCmd() *cobra.Command {
	var format, outputPath string

	cmd := &cobra.Command{
		Use:   "qrcode [value]",
		Short: "Render a QR code as SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "svg":
				svg, err := qrcode.SVG(args[0], cfg.QRCode.Size)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outputPath, []byte(svg))
			case "png":
				if outputPath == "" {
					return fmt.Errorf("--output is required for png")
				}
				img, err := qrcode.PNG(args[0], cfg.QRCode.Size)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outputPath, img)
			default:
				return fmt.Errorf("invalid format: %s (must be svg or png)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "svg", "Output format: svg, png")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Int("size", qrcode.DefaultSize, "Width and height in pixels")
	return cmd
}

func newLabelsCmd() *cobra.Command {
	var sheet, column, outDir string

	cmd := &cobra.Command{
		Use:   "labels [input]",
		Short: "Write a QR code PNG for every record of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := sheetqr.GenerateLabels(args[0], sheet, sheetqr.LabelOptions{
				Options: cfg.ExtractOptions(),
				Column:  column,
				OutDir:  outDir,
				Size:    cfg.QRCode.Size,
			})
			if err != nil {
				return err
			}
			log.Info("labels written",
				zap.String("sheet", sheet),
				zap.Int("count", len(paths)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d labels written to %s\n", len(paths), outDir)
			return err
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet name (exact, case-sensitive)")
	cmd.Flags().StringVar(&column, "column", sheetqr.DefaultLabelColumn, "Header of the value to encode")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().Int("size", qrcode.DefaultSize, "Width and height in pixels")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
