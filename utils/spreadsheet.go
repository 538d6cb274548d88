package utils

import (
	"bytes"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ImportRow is one line of a user import workbook (Name | Email | Role)
type ImportRow struct {
	Line  int
	Name  string
	Email string
	Role  string
}

// ParseUserImport reads the first sheet of an xlsx workbook. Row 1 is the header.
func ParseUserImport(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[IMPORT] closing workbook: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheetName)
	}

	out := make([]ImportRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		if cell(0) == "" && cell(1) == "" {
			continue
		}
		out = append(out, ImportRow{
			Line:  i + 1,
			Name:  cell(0),
			Email: strings.ToLower(cell(1)),
			Role:  strings.ToUpper(cell(2)),
		})
	}
	return out, nil
}

// Sheet is a named table written by WriteWorkbook
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WriteWorkbook renders the sheets in order into an xlsx buffer
func WriteWorkbook(sheets []Sheet) (*bytes.Buffer, error) {
	if len(sheets) == 0 {
		return nil, errors.New("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, errors.Wrap(err, "rename first sheet")
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, errors.Wrapf(err, "create sheet %s", sheet.Name)
		}

		header := make([]interface{}, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return nil, errors.Wrap(err, "write header")
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "write row %d", r+2)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf, nil
}
