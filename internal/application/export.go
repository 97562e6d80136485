package application

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHeaders are the column titles of every export, in column order.
var ExportHeaders = []string{
	"Full Name",
	"Last Name",
	"Date of Birth",
	"Major",
	"Department",
	"Campus",
	"Programming Knowledge",
	"Programming Goals",
	"Registration Date",
}

const exportSheet = "Registrations"

// ExportFilename returns urex-registrations-<YYYY-MM-DD>.<ext> for the UTC date of now.
func ExportFilename(now time.Time, format string) string {
	return fmt.Sprintf("urex-registrations-%s.%s", now.UTC().Format("2006-01-02"), format)
}

func exportRow(r entity.Registration, dateLayout string) []string {
	return []string{
		r.FullName,
		r.LastName,
		r.DateOfBirth,
		r.Major,
		r.Department,
		r.Campus,
		r.ProgrammingKnowledge,
		r.ProgrammingGoals,
		r.CreatedAt.UTC().Format(dateLayout),
	}
}

// ExportCSV writes the header line followed by one line per registration.
// Every row value is wrapped in double quotes with embedded quotes doubled,
// and lines are joined by "\n" without a trailing newline.
func ExportCSV(w io.Writer, regs []entity.Registration, dateLayout string) error {
	var b strings.Builder
	b.WriteString(strings.Join(ExportHeaders, ","))
	for _, r := range regs {
		b.WriteByte('\n')
		for i, cell := range exportRow(r, dateLayout) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ExportXLSX writes the same table as ExportCSV as an Excel workbook.
func ExportXLSX(w io.Writer, regs []entity.Registration, dateLayout string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	header := make([]any, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range regs {
		cells := exportRow(r, dateLayout)
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, axis, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
