package timesheet

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the timesheet to a PDF file. Currency amounts round to
// the nearest whole unit for display only; the stored minute totals are
// untouched.
func WritePDF(sheet Timesheet, filename string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Timesheet: %s - %s", sheet.ClientName, sheet.Month))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(110, 8, "Task")
	pdf.Cell(40, 8, "Time")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	if len(sheet.LineItems) == 0 {
		pdf.Cell(0, 8, "No tracked time this month.")
		pdf.Ln(8)
	}
	for _, item := range sheet.LineItems {
		pdf.Cell(110, 8, item.Title)
		pdf.Cell(40, 8, FormatMinutes(item.TotalMinutes))
		pdf.Cell(40, 8, fmt.Sprintf("%.0f", math.Round(item.Amount)))
		pdf.Ln(6)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(110, 10, "Total")
	pdf.Cell(40, 10, FormatMinutes(sheet.TotalMinutes))
	pdf.Cell(40, 10, fmt.Sprintf("%.0f (at %.2f/h)", math.Round(sheet.Subtotal), sheet.HourlyRate))
	pdf.Ln(12)

	if len(sheet.Details) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Breakdown")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, row := range sheet.Details {
			line := fmt.Sprintf("%s  %s-%s  %s  (%s)", row.Date, row.Start, row.End, row.UserID, FormatMinutes(row.Minutes))
			pdf.MultiCell(0, 6, line, "", "", false)
		}
	}

	return pdf.OutputFileAndClose(filename)
}
