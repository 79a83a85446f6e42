package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/pkg/sheetqr"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr/output"
)

func newSheetsCmd() *cobra.Command {
	var detail, pretty bool

	cmd := &cobra.Command{
		Use:   "sheets [input]",
		Short: "List the sheet names of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if detail {
				wb, err := sheetqr.SummarizeSheets(args[0], cfg.ExtractOptions())
				if err != nil {
					return err
				}
				data, err := output.WorkbookToJSON(wb, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				return writeOutput(cmd, "", data)
			}

			names, err := sheetqr.ListSheetNames(args[0], cfg.ExtractOptions())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&detail, "detail", false, "Print row counts and data ranges as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var sheet, outputPath string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "extract [input]",
		Short: "Extract a sheet as a JSON array of records",
		Long: `extract uses the first used row of the sheet as headers and prints every
following row as a JSON object mapping header to cell text. Blank rows above
the table and blank columns left of it are skipped.

Cells are rendered with their number format, as Excel displays them: 30 in a
"0.00" cell is "30.00" and 0.5 in a percent cell is "50.00%". Pass --raw to get
the stored values ("30", "0.5") instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cfg.ExtractOptions()
			if !pretty {
				out, err := sheetqr.ExtractSheetJSON(args[0], sheet, opts)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outputPath, []byte(out))
			}

			data, err := sheetqr.ExtractSheet(args[0], sheet, opts)
			if err != nil {
				return err
			}
			log.Debug("extracted sheet",
				zap.String("sheet", sheet),
				zap.Int("records", len(data.Records)),
			)
			out, err := output.RecordsToJSON(data.Records, true)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, outputPath, out)
		},
	}

	cmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet name (exact, case-sensitive)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}
