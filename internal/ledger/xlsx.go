package ledger

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"trip-audit/internal/fileutils"
)

// sheetName is the worksheet holding the trip rows.
const sheetName = "Trips"

// maxColWidth caps the auto-sized column width (excelize rejects widths
// beyond 255 characters).
const maxColWidth = 80

// XLSXStore persists the ledger as an Excel workbook with one header row and
// one row per canonical trip.
type XLSXStore struct {
	path string
}

// NewXLSXStore creates a workbook-backed store at the given path.
func NewXLSXStore(path string) *XLSXStore {
	return &XLSXStore{path: path}
}

// Path returns the workbook path.
func (s *XLSXStore) Path() string {
	return s.path
}

// Load reads every persisted row. A workbook that does not exist yet yields
// no rows.
func (s *XLSXStore) Load() ([]Row, error) {
	if !fileutils.FileExists(s.path) {
		return nil, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening ledger workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readRows(f)
}

// Append writes the given rows after the existing ones and saves the
// workbook atomically (write to a temp file, then rename over the original).
func (s *XLSXStore) Append(rows []Row) error {
	f, existing, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		if err := writeRow(f, existing+i+2, row); err != nil {
			return err
		}
	}

	all, err := readRows(f)
	if err != nil {
		return err
	}
	autoSizeColumns(f, all)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("error serializing ledger workbook: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing ledger workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing ledger workbook: %w", err)
	}
	return nil
}

// openOrCreate returns the workbook and the count of existing data rows.
func (s *XLSXStore) openOrCreate() (*excelize.File, int, error) {
	if fileutils.FileExists(s.path) {
		f, err := excelize.OpenFile(s.path)
		if err != nil {
			return nil, 0, fmt.Errorf("error opening ledger workbook: %w", err)
		}
		existing, err := readRows(f)
		if err != nil {
			_ = f.Close()
			return nil, 0, err
		}
		return f, len(existing), nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("error naming ledger sheet: %w", err)
	}
	if err := writeCells(f, 1, Header); err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, 0, nil
}

func readRows(f *excelize.File) ([]Row, error) {
	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		sheet = f.GetSheetName(0)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error scanning ledger rows: %w", err)
	}

	var rows []Row
	for i, cells := range raw {
		if i == 0 {
			continue // header
		}
		get := func(col int) string {
			if col < len(cells) {
				return cells[col]
			}
			return ""
		}
		rows = append(rows, Row{
			DateTime:     get(0),
			TripType:     get(1),
			Earnings:     get(2),
			Fare:         get(3),
			Promotion:    get(4),
			Tip:          get(5),
			StartAddress: get(6),
			EndAddress:   get(7),
			PointsEarned: get(8),
			DurationSecs: get(9),
			DistanceMi:   get(10),
			Discrepancy:  get(11),
			Verified:     get(12),
		})
	}
	return rows, nil
}

func writeRow(f *excelize.File, rowNum int, row Row) error {
	return writeCells(f, rowNum, row.cells())
}

func writeCells(f *excelize.File, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("error addressing ledger cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("error writing ledger cell %s: %w", cell, err)
		}
	}
	return nil
}

// autoSizeColumns widens each column to fit its longest value, as the
// original audit workbook did.
func autoSizeColumns(f *excelize.File, rows []Row) {
	widths := make([]int, len(Header))
	for i, h := range Header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row.cells() {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i, width := range widths {
		if width > maxColWidth {
			width = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheetName, col, col, float64(width+2))
	}
}
