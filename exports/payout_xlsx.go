package exports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hausverwaltung-backend/payout"
)

// BuildPayoutXLSX renders the disbursement-review workbook: one summary
// sheet with per-property net totals and one detail sheet listing every
// eligible payment.
func BuildPayoutXLSX(groups []payout.Group) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	detailSheet := "payments"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(detailSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Payout Batch - Eligible Payments")
	_ = f.SetCellValue(summarySheet, "A3", "Property")
	_ = f.SetCellValue(summarySheet, "B3", "Payments")
	_ = f.SetCellValue(summarySheet, "C3", "Net Total")
	for i, g := range groups {
		row := i + 4
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), g.PropertyName)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), len(g.Items))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), g.NetTotal)
	}

	_ = f.SetCellValue(detailSheet, "A1", "Payment ID")
	_ = f.SetCellValue(detailSheet, "B1", "Property")
	_ = f.SetCellValue(detailSheet, "C1", "Payment Date")
	_ = f.SetCellValue(detailSheet, "D1", "Amount")
	_ = f.SetCellValue(detailSheet, "E1", "Net Amount")
	row := 2
	for _, g := range groups {
		for _, it := range g.Items {
			_ = f.SetCellValue(detailSheet, fmt.Sprintf("A%d", row), it.PaymentID)
			_ = f.SetCellValue(detailSheet, fmt.Sprintf("B%d", row), g.PropertyName)
			_ = f.SetCellValue(detailSheet, fmt.Sprintf("C%d", row), it.PaymentDate)
			_ = f.SetCellValue(detailSheet, fmt.Sprintf("D%d", row), it.Amount)
			_ = f.SetCellValue(detailSheet, fmt.Sprintf("E%d", row), it.Net())
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
