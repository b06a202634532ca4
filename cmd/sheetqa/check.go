package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"sheetqa/internal/app"
	"sheetqa/internal/columns"
	"sheetqa/internal/config"
	"sheetqa/internal/files"
	"sheetqa/internal/rules"
	"sheetqa/pkg/contracts/domain"
)

type checkOptions struct {
	file          string
	fileNumber    int
	sheet         string
	columns       []string
	columnNumbers string
	allColumns    bool
	strict        []string
	strictNumbers string
	rules         []string
	preset        string
	runFile       string
	report        bool
	cumulative    bool
	metrics       string
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate columns of a sheet and write the report",
		Long: `Validate the chosen columns of a sheet with the selected rules.

Examples:
  # Check two columns, SKU in strict mode (no spaces at all)
  sheetqa check -f items.xlsx -s Items -c SKU -c "File Name" --strict SKU

  # Check every column for time format only
  sheetqa check -f items.xlsx -s Items --all-columns --rules time

  # Pick columns by their number from 'sheetqa columns' and use menu preset 5
  sheetqa check -f items.xlsx -s Items --column-number 1,3 --preset 5

  # Check the second workbook listed by 'sheetqa files'
  sheetqa check --file-number 2 -s Items --all-columns

  # Replay a session of several runs and write one cumulative report
  sheetqa check --run-file runs.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Workbook name in the source folder, or a path")
	cmd.Flags().IntVar(&opts.fileNumber, "file-number", 0, "Workbook number as listed by 'sheetqa files'")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "Sheet to check")
	cmd.Flags().StringSliceVarP(&opts.columns, "column", "c", nil, "Column name to check (repeatable)")
	cmd.Flags().StringVar(&opts.columnNumbers, "column-number", "", "Column numbers as listed by 'sheetqa columns' (e.g. 1,3)")
	cmd.Flags().BoolVar(&opts.allColumns, "all-columns", false, "Check every non-blank column")
	cmd.Flags().StringSliceVar(&opts.strict, "strict", nil, "Column names checked in strict spacing mode")
	cmd.Flags().StringVar(&opts.strictNumbers, "strict-number", "", "Column numbers checked in strict spacing mode")
	cmd.Flags().StringSliceVarP(&opts.rules, "rules", "r", nil, "Rules to run: spacing, time, extension or all (default all)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Validation menu choice 1-7 instead of --rules")
	cmd.Flags().StringVar(&opts.runFile, "run-file", "", "YAML file listing several runs for one session")
	cmd.Flags().BoolVar(&opts.report, "report", true, "Write the highlighted workbook and CSV report")
	cmd.Flags().BoolVar(&opts.cumulative, "cumulative", true, "Tabulate every run of the session in the report, not only the last")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "Write Prometheus metrics to this file (relative to the reports folder)")

	cmd.MarkFlagsMutuallyExclusive("file", "file-number")
	cmd.MarkFlagsMutuallyExclusive("rules", "preset")
	cmd.MarkFlagsMutuallyExclusive("all-columns", "column")
	cmd.MarkFlagsMutuallyExclusive("all-columns", "column-number")

	return cmd
}

func runCheck(ctx context.Context, root *rootOptions, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a := root.app

	runs, err := opts.runConfigs(a)
	if err != nil {
		return err
	}

	out := newPrinter(os.Stdout, root.output)

	// a failed run is reported and skipped; the session keeps earlier runs
	var failed []error
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	for i, rc := range runs {
		s.Suffix = fmt.Sprintf(" Checking %s / %s (run %d of %d)...", rc.SourcePath, rc.Sheet, i+1, len(runs))
		if root.output == "human" {
			s.Start()
		}
		res, err := a.Run(ctx, rc)
		s.Stop()
		if err != nil {
			if len(runs) == 1 {
				return err
			}
			out.runFailed(rc, err)
			failed = append(failed, err)
			continue
		}
		if err := out.runResult(res); err != nil {
			return err
		}
	}
	if a.Session.Len() == 0 {
		return errors.Join(failed...)
	}

	if opts.report {
		s.Suffix = " Writing report..."
		if root.output == "human" {
			s.Start()
		}
		emitted, err := a.Report(ctx, app.ReportOptions{Cumulative: opts.cumulative})
		s.Stop()
		if err != nil {
			return err
		}
		if err := out.report(emitted); err != nil {
			return err
		}
	}

	if len(runs) > 1 {
		if err := out.sessionSummary(a.SessionSummary(), a.Session.Len()); err != nil {
			return err
		}
	}

	if opts.metrics != "" {
		if err := a.WriteMetrics(opts.metrics); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d runs failed: %w", len(failed), len(runs), errors.Join(failed...))
	}
	return nil
}

// runConfigs builds the runs of this invocation from a run file or flags
func (o *checkOptions) runConfigs(a *app.Application) ([]domain.RunConfig, error) {
	if o.runFile != "" {
		return config.LoadRunFile(o.runFile)
	}
	if o.fileNumber != 0 {
		list, err := a.Workbooks()
		if err != nil {
			return nil, err
		}
		picked, err := files.SelectWorkbook(list, o.fileNumber)
		if err != nil {
			return nil, err
		}
		o.file = picked.Path
	}
	if o.file == "" || o.sheet == "" {
		return nil, fmt.Errorf("--file (or --file-number) and --sheet are required unless --run-file is given")
	}

	kinds, err := o.ruleKinds()
	if err != nil {
		return nil, err
	}

	rc := domain.RunConfig{
		SourcePath:  o.file,
		Sheet:       o.sheet,
		AllColumns:  o.allColumns,
		ActiveRules: kinds,
	}

	names := append([]string(nil), o.columns...)
	strict := append([]string(nil), o.strict...)
	if o.columnNumbers != "" || o.strictNumbers != "" {
		available, err := a.Columns(o.file, o.sheet)
		if err != nil {
			return nil, err
		}
		if o.columnNumbers != "" {
			picked, err := columns.ParseSelection(o.columnNumbers, available)
			if err != nil {
				return nil, err
			}
			names = append(names, picked...)
		}
		if o.strictNumbers != "" {
			picked, err := columns.ParseSelection(o.strictNumbers, available)
			if err != nil {
				return nil, err
			}
			strict = append(strict, picked...)
		}
	}

	if !rc.AllColumns && len(names) == 0 {
		return nil, fmt.Errorf("choose columns with --column, --column-number or --all-columns")
	}
	for _, name := range names {
		rc.Columns = append(rc.Columns, domain.ColumnRequest{Name: name})
	}
	rc.StrictColumns = strict

	return []domain.RunConfig{rc}, nil
}

func (o *checkOptions) ruleKinds() ([]domain.RuleKind, error) {
	switch {
	case o.preset != "":
		return rules.Preset(o.preset)
	case len(o.rules) > 0:
		return rules.ParseKinds(o.rules)
	default:
		return rules.All().Kinds(), nil
	}
}
