// Package exporter writes audit reports.
//
// CSVWriter is the flat delimited writer (UTF-8, optional BOM so Excel
// picks the encoding up). ReportEmitter produces the four report files of
// a run: the marked workbook and its CSV twin, each saved to the
// timestamped run folder and to the "latest" folder.
//
// Example usage:
//
//	emitter := exporter.NewReportEmitter(open, exporter.NewCSVWriter(paths, true), paths, cfg.Audit, logger)
//	res, err := emitter.Emit(ctx, exporter.EmitRequest{
//		SourcePath: "excel_files/items.xlsx",
//		Sheet:      "Items",
//		Mark:       latest.Issues,
//		Tabulate:   store.Issues(),
//	})
package exporter
