package workbook

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	auditerrors "sheetqa/internal/errors"
)

// Highlight is the fill and font colour applied to flagged cells (hex RGB)
type Highlight struct {
	Fill string
	Font string
}

// DefaultHighlight is white text on a solid red background.
var DefaultHighlight = Highlight{Fill: "FF0000", Font: "FFFFFF"}

// Styler opens workbooks for marking
type Styler struct {
	highlight Highlight
	logger    *slog.Logger
}

// NewStyler creates a styler. Empty highlight colours fall back to
// DefaultHighlight.
func NewStyler(highlight Highlight, logger *slog.Logger) *Styler {
	if highlight.Fill == "" {
		highlight.Fill = DefaultHighlight.Fill
	}
	if highlight.Font == "" {
		highlight.Font = DefaultHighlight.Font
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Styler{highlight: highlight, logger: logger.With(slog.String("component", "workbook_styler"))}
}

// Open loads a fresh, mutable copy of the workbook at path.
func (s *Styler) Open(path string) (*Handle, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, auditerrors.NewIOFailure("open workbook "+path, err)
	}
	return &Handle{
		f:         f,
		highlight: s.highlight,
		styles:    make(map[int]int),
		logger:    s.logger,
	}, nil
}

// Handle is an open workbook being marked up
type Handle struct {
	f         *excelize.File
	highlight Highlight
	// base style id -> highlighted style id
	styles map[int]int
	logger *slog.Logger
}

// HasSheet reports whether the workbook contains sheet.
func (h *Handle) HasSheet(sheet string) bool {
	idx, err := h.f.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}

// MarkCell highlights the cell at spreadsheet row (1-based) and column
// position (0-based). The cell keeps its number format, borders and
// alignment; only fill and font colour change. Marking twice is harmless.
func (h *Handle) MarkCell(sheet string, row, col int) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fmt.Errorf("cell at row %d column %d: %w", row, col+1, err)
	}

	base, err := h.f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("read style of %s: %w", cell, err)
	}

	styleID, ok := h.styles[base]
	if !ok {
		styleID, err = h.highlighted(base)
		if err != nil {
			return err
		}
		h.styles[base] = styleID
	}

	if err := h.f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("style %s: %w", cell, err)
	}
	return nil
}

func (h *Handle) highlighted(base int) (int, error) {
	style, err := h.f.GetStyle(base)
	if err != nil || style == nil {
		style = &excelize.Style{}
	}
	style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{h.highlight.Fill}}
	if style.Font == nil {
		style.Font = &excelize.Font{}
	}
	style.Font.Color = h.highlight.Font

	id, err := h.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create highlight style: %w", err)
	}
	return id, nil
}

// ReplaceSheet drops sheet if it exists and recreates it holding rows.
func (h *Handle) ReplaceSheet(sheet string, rows [][]any) error {
	if h.HasSheet(sheet) {
		if err := h.f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("delete sheet %q: %w", sheet, err)
		}
	}
	if _, err := h.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := h.f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

// SaveAs writes the workbook to path.
func (h *Handle) SaveAs(path string) error {
	if err := h.f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	h.logger.Debug("Saved workbook", slog.String("path", path))
	return nil
}

// Close releases the workbook.
func (h *Handle) Close() error {
	return h.f.Close()
}
