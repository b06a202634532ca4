// Package files lists the workbooks available for auditing.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	workbooks, err := discovery.FindWorkbooks(paths.SourceDir)
//	chosen, err := files.SelectWorkbook(workbooks, 2)
package files
