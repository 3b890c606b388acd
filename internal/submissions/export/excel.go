// Package export renders submission listings into XLSX workbooks for the
// admin export endpoint and the scheduled digest.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row is one workbook line. The caller maps its records into rows so the
// workbook layout stays independent of the storage model.
type Row struct {
	ID           string
	BusinessName string
	ContactName  string
	ContactEmail string
	SelectedPlan string
	Onboarded    bool
	CreatedAt    time.Time
}

var headers = []string{"ID", "Business Name", "Contact Name", "Contact Email", "Plan", "Onboarded", "Submitted At"}

// Workbook builds a single-sheet XLSX of the given rows.
func Workbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Submissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"15873F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i, row := range rows {
		onboarded := "No"
		if row.Onboarded {
			onboarded = "Yes"
		}
		values := []interface{}{
			row.ID,
			row.BusinessName,
			row.ContactName,
			row.ContactEmail,
			row.SelectedPlan,
			onboarded,
			row.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "D", 24)
	f.SetColWidth(sheet, "E", "G", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
