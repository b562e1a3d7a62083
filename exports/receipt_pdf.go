package exports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hausverwaltung-backend/models"
)

// BuildBillPDF renders a printable statement for one bill, with the
// utility breakdown and any payments recorded against it.
func BuildBillPDF(bill *models.Bill, unitLabel, propertyName string, payments []models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Utility & Rent Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Property: %s", propertyName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Unit: %s", unitLabel))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Billing period: %s", bill.BillingPeriod))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Reading date: %s", bill.ReadingDate.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Due date: %s", bill.DueDate.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", bill.Status))
	pdf.Ln(8)

	// Charges table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Charge", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Usage", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)

	row := func(name, usage string, amount float64) {
		pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, usage, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	row("Water", fmt.Sprintf("%.2f m3", bill.WaterUsage), bill.WaterCost)
	row("Electricity", fmt.Sprintf("%.2f kWh", bill.ElectricityUsage), bill.ElectricityCost)
	row("Rent", "", bill.Rent)
	row("Association dues", "", bill.AssociationDues)
	row("Late fee", "", bill.LateFee)
	row("Penalty", "", bill.Penalty)
	row("Discount", "", -bill.Discount)

	pdf.SetFont("Arial", "B", 10)
	row("Total amount due", "", bill.TotalAmountDue)
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(4)

	if len(payments) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, "Receipt", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Date", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Status", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Amount", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, p := range payments {
			date := ""
			if p.PaymentDate != nil {
				date = p.PaymentDate.Format("2006-01-02")
			}
			pdf.CellFormat(50, 6, p.ReceiptReference, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, string(p.PaymentStatus), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", p.AmountPaid), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
