// Package workbook is the spreadsheet collaborator of the audit core.
//
// Loader reads a sheet into a domain.Table (header row plus string cells),
// and Styler opens a separate copy of a workbook so flagged cells can be
// highlighted and the "Validation Report" sheet replaced before saving.
// Both are thin wrappers around excelize.
//
// Example usage:
//
//	loader := workbook.NewLoader(logger)
//	table, err := loader.Load("excel_files/items.xlsx", "Items")
//
//	h, err := workbook.NewStyler(workbook.DefaultHighlight, logger).Open(table.Path)
//	defer h.Close()
//	err = h.MarkCell("Items", 2, 0) // A2
//	err = h.SaveAs("reports/latest/items_Items_validation_report.xlsx")
package workbook
