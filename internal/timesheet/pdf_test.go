package timesheet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWritePDF(t *testing.T) {
	sheet := Timesheet{
		ClientID:   "c1",
		ClientName: "Acme",
		Month:      "2026-02",
		HourlyRate: 100,
		LineItems: []LineItem{
			{TaskID: "t1", Title: "Homepage redesign", TotalMinutes: 240, Amount: 400},
		},
		Details: []DetailRow{
			{Date: "2026-02-15", Start: "09:00", End: "11:00", UserID: "anna", TaskID: "t1", Minutes: 120},
			{Date: "2026-02-16", Start: "10:00", End: "12:00", UserID: "anna", TaskID: "t1", Minutes: 120},
		},
		TotalMinutes: 240,
		Subtotal:     400,
	}

	path := filepath.Join(t.TempDir(), "timesheet.pdf")
	if err := WritePDF(sheet, path); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("generated PDF is empty")
	}
}

func TestWritePDFEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDF(Timesheet{ClientName: "Acme", Month: "2026-02"}, path); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
}
