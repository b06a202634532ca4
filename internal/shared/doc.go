// Package shared holds helpers used by more than one package's tests.
//
// The testutil subpackage builds xlsx fixtures with excelize and captures
// slog records so tests can assert on what was logged:
//
//	func TestSomething(t *testing.T) {
//	    path := testutil.WriteWorkbook(t, filepath.Join(t.TempDir(), "items.xlsx"),
//	        testutil.SheetRows{Name: "Items", Rows: [][]any{{"SKU"}, {"AB 12"}}})
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogAttr(t, logs, "column", "SKU")
//	}
package shared
