package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newFilesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the workbooks in the source folder",
		Long: `List the workbooks in the source folder, numbered from 1 and sorted by
name. The most recently modified one is marked. The numbers can be passed
to 'sheetqa check --file-number'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workbooks, err := root.app.Workbooks()
			if err != nil {
				return err
			}
			return newPrinter(os.Stdout, root.output).workbooks(root.app.Paths.SourceDir, workbooks)
		},
	}
}

func newSheetsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := root.app.Sheets(args[0])
			if err != nil {
				return err
			}
			return newPrinter(os.Stdout, root.output).sheets(args[0], sheets)
		},
	}
}

func newColumnsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE SHEET",
		Short: "List the numbered columns of a sheet",
		Long: `List the non-blank column headers of a sheet, numbered from 1.
The numbers can be passed to 'sheetqa check --column-number'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := root.app.Columns(args[0], args[1])
			if err != nil {
				return err
			}
			return newPrinter(os.Stdout, root.output).columns(args[1], cols)
		},
	}
}
