package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/unibudget/unibudget_backend/models"
	"github.com/xuri/excelize/v2"
)

// ExportTransactionsExcel writes the user's full ledger as a spreadsheet.
// Goal rows carry their period and saved amount; other columns stay blank.
// The workbook is built fully before anything is written, so a failure
// never leaves a half-written response behind.
func ExportTransactionsExcel(ctx context.Context, userId int, w io.Writer) error {

	data, err := models.GetAllTransactions(ctx, userId)
	if err != nil {
		return err
	}

	f, err := buildTransactionsWorkbook(data)
	if err != nil {
		return err
	}
	return f.Write(w)
}

func buildTransactionsWorkbook(data []*models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Add headers
	headings := []string{"Date", "Type", "Title", "Category", "Amount", "Frequency", "Period", "Saved", "Description"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, d := range data {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, d.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, "B"+row, string(d.Type))
		f.SetCellValue(sheetName, "C"+row, d.Title)
		f.SetCellValue(sheetName, "D"+row, d.Category)
		f.SetCellValue(sheetName, "E"+row, d.Amount.InexactFloat64())
		if d.Frequency != nil {
			f.SetCellValue(sheetName, "F"+row, string(*d.Frequency))
		}
		if d.Period != nil {
			f.SetCellValue(sheetName, "G"+row, string(*d.Period))
			f.SetCellValue(sheetName, "H"+row, d.CurrentSaved.InexactFloat64())
		}
		f.SetCellValue(sheetName, "I"+row, d.Description)
	}

	return f, nil
}

// ExportFilename is the attachment name for a ledger export.
func ExportFilename(now time.Time) string {
	return "transactions-" + now.Format("2006-01-02") + ".xlsx"
}
