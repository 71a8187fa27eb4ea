package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/lead-portal/internal/domain"
)

const (
	exportSheetName  = "Заявки"
	exportDateLayout = "02.01.2006 15:04"
)

var exportHeaders = []string{
	"ID", "Дата создания", "ФИО", "Телефон", "Email", "Услуга", "Сообщение", "Статус", "Обновлено",
}

var exportColWidths = []float64{6, 18, 25, 16, 25, 30, 50, 15, 18}

var statusLabels = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusNew:        "Новая",
	domain.ApplicationStatusInProgress: "В работе",
	domain.ApplicationStatusCompleted:  "Выполнена",
}

// ExportService serializes application sets into XLSX workbooks.
type ExportService struct{}

// NewExportService constructs the service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// FileName builds the download name for the given day, e.g. Заявки_31-08-2026.xlsx.
func (s *ExportService) FileName(now time.Time) string {
	return fmt.Sprintf("Заявки_%s.xlsx", now.Format("02-01-2006"))
}

// Build renders one row per application in input order. Empty messages render
// as a literal em dash placeholder, statuses as their Russian labels.
func (s *ExportService) Build(apps []domain.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}
	for i, width := range exportColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	for rowIdx, app := range apps {
		values := []any{
			app.ID,
			app.CreatedAt.Format(exportDateLayout),
			app.Name,
			app.Phone,
			app.Email,
			app.Service,
			messageOrPlaceholder(app.Message),
			statusLabel(app.Status),
			app.UpdatedAt.Format(exportDateLayout),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

func messageOrPlaceholder(message string) string {
	if message == "" {
		return "—"
	}
	return message
}

func statusLabel(status domain.ApplicationStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}
