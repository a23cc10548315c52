package spreadsheet

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

const sheetName = "Products"

var header = []any{"#", "Name", "Price (INR)", "URL", "Offer"}

type excelExporter struct{}

// NewExcelExporter XLSX product exporter
func NewExcelExporter() repository.ProductExporter {
	return &excelExporter{}
}

// ContentType MIME type of XLSX workbooks
func (e *excelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension file extension of XLSX workbooks
func (e *excelExporter) Extension() string {
	return ".xlsx"
}

// ExportProducts writes one row per product below a bold header row
func (e *excelExporter) ExportProducts(query string, products []entity.ProductResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{i + 1, p.Name, p.PriceInINR, p.URL, p.Offer}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 48); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "D", "E", 40); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("Shopping results for %q", query),
		Creator: "Ekonomi",
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
