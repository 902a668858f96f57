package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders the paper side of the yard: per-transaction receipt
// PDFs and the bulk CSV export the office reconciles against.
type ReportService struct {
	Transactions TransactionStore
}

func NewReportService(transactions TransactionStore) *ReportService {
	return &ReportService{Transactions: transactions}
}

// GenerateReceiptPDF renders a single settled transaction as a printable
// receipt. All figures come from the transaction's snapshot fields, so a
// reprint months later matches the paper copy handed over at the gate.
func (s *ReportService) GenerateReceiptPDF(txn *models.Transaction) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(128, 8, "Weighbridge Exit Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(128, 5, fmt.Sprintf("Entry No: %s    Printed: %s",
		txn.EntryNumber, timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(128, 6, "Truck & Customer", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(64, 6, fmt.Sprintf("Truck: %s", txn.TruckNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Name: %s", txn.CustomerName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Contact: %s", txn.ContactNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Shed: %s", txn.ShedLocation), "RB", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(128, 6, "Weights & Amount", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	row := func(label, value string) {
		pdf.CellFormat(64, 6, label, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(64, 6, value, "RB", 1, "R", false, 0, "")
	}
	row("Empty Weight (kg)", txn.EmptyWeight.StringFixed(3))
	row("Loaded Weight (kg)", txn.LoadedWeight.StringFixed(3))
	row("Net Weight (kg)", txn.NetWeight.StringFixed(3))
	row("Rate / kg", "Rs. "+txn.RatePerKg.StringFixed(2))
	row("Total Amount", "Rs. "+txn.TotalAmount.StringFixed(2))
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(128, 6, "Settlement", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	row("Old Balance", "Rs. "+txn.OldBalance.StringFixed(2))
	row("Advance Paid", "Rs. "+txn.AdvancePaid.StringFixed(2))
	row("Paid Now ("+txn.PaymentMethod+")", "Rs. "+txn.PaidNow.StringFixed(2))

	if txn.FinalBalance.IsPositive() {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(64, 8, "Final Balance", "1", 0, "L", true, 0, "")
	pdf.CellFormat(64, 8, "Rs. "+txn.FinalBalance.StringFixed(2), "1", 1, "R", true, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(128, 5, fmt.Sprintf("Entry: %s %s    Exit: %s %s",
		txn.EntryDate.Format(timeutil.DateLayout), txn.EntryTime,
		txn.ExitDate.Format(timeutil.DateLayout), txn.ExitTime), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateTransactionsCSV exports transactions (optionally filtered) in the
// office's reconciliation format. The same function feeds the cloud backup.
func (s *ReportService) GenerateTransactionsCSV(ctx context.Context, filter models.TransactionFilter) ([]byte, error) {
	txns, err := s.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"Entry No", "Truck", "Customer", "Contact",
		"Empty Wt", "Loaded Wt", "Net Wt", "Rate/kg", "Total",
		"Advance", "Old Balance", "Paid Now", "Final Balance",
		"Method", "Shed", "Entry Date", "Entry Time", "Exit Date", "Exit Time",
	})

	for _, t := range txns {
		w.Write([]string{
			t.EntryNumber,
			t.TruckNumber,
			t.CustomerName,
			t.ContactNumber,
			t.EmptyWeight.StringFixed(3),
			t.LoadedWeight.StringFixed(3),
			t.NetWeight.StringFixed(3),
			t.RatePerKg.StringFixed(2),
			t.TotalAmount.StringFixed(2),
			t.AdvancePaid.StringFixed(2),
			t.OldBalance.StringFixed(2),
			t.PaidNow.StringFixed(2),
			t.FinalBalance.StringFixed(2),
			t.PaymentMethod,
			t.ShedLocation,
			t.EntryDate.Format(timeutil.DateLayout),
			t.EntryTime,
			t.ExitDate.Format(timeutil.DateLayout),
			t.ExitTime,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
