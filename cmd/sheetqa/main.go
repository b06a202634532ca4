package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sheetqa/internal/app"
	"sheetqa/internal/config"
	"sheetqa/internal/infrastructure"
)

// rootOptions are the persistent flags and the application they build
type rootOptions struct {
	configFile string
	logLevel   string
	output     string

	app *app.Application
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed)
		red.Fprintf(os.Stderr, "✗ %v\n", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sheetqa",
		Short: "Audit spreadsheet cells for spacing, time format and file extension defects",
		Long: `sheetqa scans chosen columns of an Excel sheet for irregular spacing and
special characters, malformed 24-hour timestamps and upper-case file
extensions. Flagged cells are highlighted in a copy of the workbook and
listed with a suggested fix in a "Validation Report" sheet and a CSV file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.init,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a sheetqa.yaml config file (default: $SHEETQA_CONFIG or ./sheetqa.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "human", "Output format (human, json, yaml)")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newFilesCmd(opts),
		newSheetsCmd(opts),
		newColumnsCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// init loads configuration, starts logging and builds the application
func (o *rootOptions) init(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	switch o.output {
	case "human", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (expected human, json or yaml)", o.output)
	}

	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFrom(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	o.app, err = app.NewApplication(cfg, logger)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", config.AppName, config.Version)
		},
	}
}
