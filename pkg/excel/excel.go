package excel

import (
	"bytes"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Row is one data row: an ordered mapping from normalized column name to the
// raw cell text. Column names are lowercased and trimmed on decode; cells
// keep whatever text excelize produced for them.
type Row struct {
	// Index is the 1-based position of the row within the sheet's data
	// rows (the header row is not counted).
	Index   int
	Columns []string
	cells   map[string]string
}

// NewRow builds a row directly from normalized column names and cells,
// bypassing workbook decoding.
func NewRow(index int, columns []string, cells map[string]string) Row {
	copied := make(map[string]string, len(cells))
	for k, v := range cells {
		copied[NormalizeColumn(k)] = v
	}
	return Row{Index: index, Columns: columns, cells: copied}
}

// Get returns the raw cell under the given normalized column name. The
// second return is false when the sheet has no such column at all.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Value is Get without the presence flag; absent columns read as blank.
func (r Row) Value(column string) string {
	return r.cells[column]
}

func (r Row) IsBlank() bool {
	for _, v := range r.cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

type Workbook struct {
	sheets []Sheet
	byName map[string]int
}

// Sheet looks a sheet up by name, case-insensitively.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	idx, ok := w.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return &w.sheets[idx], true
}

func (w *Workbook) Sheets() []Sheet {
	return w.sheets
}

func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Decode parses workbook bytes into per-sheet ordered rows. The first row of
// each sheet is the header row; rows that are blank across all columns are
// dropped. Sheets without a header row decode as empty.
func Decode(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{byName: make(map[string]int)}
	for _, sheetName := range f.GetSheetList() {
		raw, err := f.GetRows(sheetName)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %q", sheetName)
		}

		sheet := Sheet{Name: sheetName}
		if len(raw) > 0 {
			for _, header := range raw[0] {
				sheet.Columns = append(sheet.Columns, NormalizeColumn(header))
			}
			for i, cells := range raw[1:] {
				row := Row{
					Index:   i + 1,
					Columns: sheet.Columns,
					cells:   make(map[string]string, len(sheet.Columns)),
				}
				for j, column := range sheet.Columns {
					if column == "" {
						continue
					}
					if j < len(cells) {
						row.cells[column] = cells[j]
					} else {
						row.cells[column] = ""
					}
				}
				if row.IsBlank() {
					continue
				}
				sheet.Rows = append(sheet.Rows, row)
			}
		}

		wb.byName[strings.ToLower(sheetName)] = len(wb.sheets)
		wb.sheets = append(wb.sheets, sheet)
	}
	return wb, nil
}

// SheetData is the encode-side counterpart of Sheet: a fixed header row
// followed by data rows in header order.
type SheetData struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Encode writes the sheets into a new workbook, in the given order. The
// first sheet replaces excelize's default sheet so no empty "Sheet1" is
// left behind.
func Encode(sheets []SheetData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, errors.Wrapf(err, "failed to rename default sheet to %q", sheet.Name)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, errors.Wrapf(err, "failed to create sheet %q", sheet.Name)
			}
		}

		headers := make([]interface{}, len(sheet.Headers))
		for j, h := range sheet.Headers {
			headers[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
			return nil, errors.Wrapf(err, "failed to write header row of %q", sheet.Name)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "failed to write row %d of %q", r+1, sheet.Name)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}
