// Package main provides the CLI entry point for sheetqr.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/internal/config"
	"github.com/sheetqr/sheetqr-go/internal/logger"
)

var (
	configFile string
	cfg        config.Config
	log        = zap.NewNop()
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"workers":     "extract.workers",
	"raw":         "extract.raw_values",
	"csv-charset": "extract.csv_charset",
	"size":        "qrcode.size",
	"addr":        "server.addr",
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetqr",
		Short: "Read spreadsheets as JSON records and generate QR labels",
		Long: `sheetqr lists and extracts spreadsheet sheets (xlsx, xls, xlsb, csv) as JSON
records, renders QR codes, saves base64 images and serves the same commands
over a local HTTP bridge.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, toml or json)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Int("workers", 0, "Row conversion workers (default: GOMAXPROCS)")
	flags.Bool("raw", false, "Use stored cell values instead of formatted text")
	flags.String("csv-charset", "", "Charset of CSV input (default: utf-8)")

	rootCmd.AddCommand(
		newSheetsCmd(),
		newExtractCmd(),
		newQRCodeCmd(),
		newLabelsCmd(),
		newSaveImageCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// setup loads configuration with command-line flags taking precedence and
// builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	var err error
	cfg, err = config.Load(v, configFile)
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("wrote output", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
