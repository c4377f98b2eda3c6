package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

// Service produces XLSX bytes for parsed comandas.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ReceiptXLSX returns an XLSX workbook (as bytes) with one row per line item,
// in parse order, followed by a grand-total row.
func (s *Service) ReceiptXLSX(r *entity.Receipt) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Comanda"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Product",
		"Quantity",
		"Unit Price",
		"Total",
		"Date",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	date := ""
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Format("2006-01-02")
	}

	row := 2
	for _, li := range r.Items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, li.Product)
		write(2, li.Quantity)
		write(3, li.UnitPrice)
		write(4, li.Total)
		write(5, date)
		row++
	}

	// Grand total under the Total column
	totalLabel, _ := excelize.CoordinatesToCellName(1, row)
	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	_ = f.SetCellValue(sheet, totalLabel, "Total")
	_ = f.SetCellValue(sheet, totalCell, r.Total())

	_ = f.SetColWidth(sheet, "A", "A", 32) // product
	_ = f.SetColWidth(sheet, "B", "D", 12) // quantity/price/total
	_ = f.SetColWidth(sheet, "E", "E", 14) // date

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"receipt_id", r.ID.String(),
		"rows", len(r.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
