package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
)

// ExcelReporter exports the trade history and portfolio summary to an
// xlsx workbook.
type ExcelReporter struct{}

type excelStyles struct {
	Header   int
	Currency int
	Base     int
}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteTradesXLSX writes the trade history and summary to path.
func (r *ExcelReporter) WriteTradesXLSX(trades []portfolio.Trade, summary portfolio.Summary, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(summarySheet)

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, trades, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, summary, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Currency, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Base, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	return styles, err
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, trades []portfolio.Trade, styles excelStyles) error {
	headers := []string{"ID", "Timestamp", "Symbol", "Side", "Quantity", "Price", "Notional", "Fee"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, styles.Header)
	}

	for row, trade := range trades {
		values := []interface{}{
			trade.ID,
			time.UnixMilli(trade.Timestamp).Format("2006-01-02 15:04:05"),
			trade.Symbol,
			string(trade.Side),
			trade.Quantity,
			trade.Price,
			trade.Quantity * trade.Price,
			trade.Fee,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			fx.SetCellValue(sheet, cell, value)
			if col >= 5 {
				fx.SetCellStyle(sheet, cell, cell, styles.Currency)
			} else {
				fx.SetCellStyle(sheet, cell, cell, styles.Base)
			}
		}
	}

	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 20)
	fx.SetColWidth(sheet, "C", "D", 10)
	fx.SetColWidth(sheet, "E", "H", 14)

	return nil
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, summary portfolio.Summary, styles excelStyles) error {
	rows := []struct {
		label string
		value interface{}
	}{
		{"Available Balance", summary.AvailableBalance},
		{"Positions Value", summary.PositionsValue},
		{"Total Value", summary.TotalValue},
		{"Total P&L", summary.TotalPnL},
		{"Open Positions", summary.OpenPositions},
		{"Total Trades", summary.TotalTrades},
	}

	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.Header)

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+2)
		valueCell := fmt.Sprintf("B%d", i+2)
		fx.SetCellValue(sheet, labelCell, row.label)
		fx.SetCellValue(sheet, valueCell, row.value)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.Base)
		if _, isFloat := row.value.(float64); isFloat {
			fx.SetCellStyle(sheet, valueCell, valueCell, styles.Currency)
		} else {
			fx.SetCellStyle(sheet, valueCell, valueCell, styles.Base)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 22)
	fx.SetColWidth(sheet, "B", "B", 18)

	return nil
}
