package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrEmptyWorkbook = errors.New("no data found in workbook")

// ImportRow is one parsed worksheet row. Err is set when the row could not be
// turned into a CertificateInput.
type ImportRow struct {
	Line  int
	Input CertificateInput
	Err   error
}

// ReadCertificateWorkbook reads certificates from an XLSX file laid out like
// ExportXLSX writes it. The Certificates sheet is used when present, otherwise
// the first sheet. Columns are matched by header name so their order is free.
func ReadCertificateWorkbook(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := SheetCertificates
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"certificate_id", "student_name", "year_of_passing"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optional := func(row []string, name string) *string {
		if v := cell(row, name); v != "" {
			return &v
		}
		return nil
	}

	result := make([]ImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		// 빈 행 스킵
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		parsed := ImportRow{Line: line}
		year, err := strconv.Atoi(cell(row, "year_of_passing"))
		if err != nil {
			parsed.Err = fmt.Errorf("row %d: year_of_passing %q is not a number", line, cell(row, "year_of_passing"))
			result = append(result, parsed)
			continue
		}
		parsed.Input = CertificateInput{
			CertificateID: cell(row, "certificate_id"),
			StudentName:   cell(row, "student_name"),
			RollNumber:    optional(row, "roll_number"),
			Course:        cell(row, "course"),
			Institution:   cell(row, "institution"),
			College:       optional(row, "college"),
			YearOfPassing: year,
			Grade:         cell(row, "grade"),
			Type:          cell(row, "type"),
		}
		result = append(result, parsed)
	}
	return result, nil
}
