// Package app wires the audit components together around one session.
//
// An Application owns an explicit session.Store; nothing is kept in
// package state, so independent Applications are independent sessions.
//
// # Run Flow
//
//	1. Validate the RunConfig and build the active rule set
//	2. Load the sheet (header row + data rows)
//	3. Resolve the requested columns, logging misses with suggestions
//	4. Scan with the validation pipeline
//	5. Append the run to the session
//
// Report then marks the latest run's cells on a fresh copy of its workbook
// and writes the workbook and CSV reports to the timestamped and latest
// folders, tabulating either the latest run or the whole session.
//
// # Usage
//
//	a, err := app.NewApplication(cfg, logger)
//	res, err := a.Run(ctx, runConfig)
//	out, err := a.Report(ctx, app.ReportOptions{Cumulative: true})
package app
