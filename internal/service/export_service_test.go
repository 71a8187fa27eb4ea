package service

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/lead-portal/internal/domain"
)

func exportFixture() []domain.Application {
	created := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	uid := int64(3)
	return []domain.Application{
		{
			ID:        12,
			Name:      "Иван Петров",
			Phone:     "+7 900 123-45-67",
			Email:     "ivan@example.com",
			Service:   "Покупка квартиры",
			Message:   "Ищу двухкомнатную квартиру",
			Status:    domain.ApplicationStatusNew,
			UserID:    &uid,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        13,
			Name:      "Анна Смирнова",
			Phone:     "+7 900 765-43-21",
			Email:     "anna@example.com",
			Service:   "Продажа дома",
			Message:   "",
			Status:    domain.ApplicationStatusCompleted,
			CreatedAt: created.Add(time.Hour),
			UpdatedAt: created.Add(2 * time.Hour),
		},
	}
}

func openWorkbook(t *testing.T, apps []domain.Application) *excelize.File {
	t.Helper()
	buf, err := NewExportService().Build(apps)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExportService_FileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	got := NewExportService().FileName(now)
	want := "Заявки_31-08-2026.xlsx"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestExportService_Build_SheetAndHeaders(t *testing.T) {
	f := openWorkbook(t, nil)

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Заявки" {
		t.Fatalf("expected single sheet %q, got %v", "Заявки", sheets)
	}

	rows, err := f.GetRows("Заявки")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export must contain only the header row, got %d rows", len(rows))
	}
	wantHeaders := []string{"ID", "Дата создания", "ФИО", "Телефон", "Email", "Услуга", "Сообщение", "Статус", "Обновлено"}
	for i, want := range wantHeaders {
		if rows[0][i] != want {
			t.Errorf("header %d: want %q, got %q", i, want, rows[0][i])
		}
	}
}

func TestExportService_Build_RowPerApplication(t *testing.T) {
	apps := exportFixture()
	f := openWorkbook(t, apps)

	rows, err := f.GetRows("Заявки")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != len(apps)+1 {
		t.Fatalf("expected %d rows, got %d", len(apps)+1, len(rows))
	}

	first := rows[1]
	if first[0] != "12" {
		t.Errorf("id cell: %q", first[0])
	}
	if first[1] != "30.08.2026 14:05" {
		t.Errorf("created cell: %q", first[1])
	}
	if first[2] != "Иван Петров" {
		t.Errorf("name cell: %q", first[2])
	}
	if first[6] != "Ищу двухкомнатную квартиру" {
		t.Errorf("message cell: %q", first[6])
	}
	if first[7] != "Новая" {
		t.Errorf("status cell: %q", first[7])
	}
}

func TestExportService_Build_EmptyMessagePlaceholder(t *testing.T) {
	f := openWorkbook(t, exportFixture())

	rows, err := f.GetRows("Заявки")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	second := rows[2]
	if second[6] != "—" {
		t.Errorf("expected placeholder for empty message, got %q", second[6])
	}
	if second[7] != "Выполнена" {
		t.Errorf("status cell: %q", second[7])
	}
}

func TestExportService_Build_ColumnWidths(t *testing.T) {
	f := openWorkbook(t, nil)

	for i, want := range exportColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			t.Fatalf("column name: %v", err)
		}
		got, err := f.GetColWidth("Заявки", col)
		if err != nil {
			t.Fatalf("col width: %v", err)
		}
		if got != want {
			t.Errorf("column %s width: want %v, got %v", col, want, got)
		}
	}
}

func TestStatusLabel_UnknownFallsBack(t *testing.T) {
	if got := statusLabel("archived"); got != "archived" {
		t.Errorf("unknown status must pass through, got %q", got)
	}
}
