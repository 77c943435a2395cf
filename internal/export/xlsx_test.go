package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

func TestHistoryWorkbook(t *testing.T) {
	at := time.Date(2025, 6, 10, 6, 30, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{
			PlantName: "Basilic", PlantCategory: "Aromatique", SessionID: "s1",
			Kind: domain.KindAutomatic, Start: domain.TimeOfDay{Hour: 8}, End: domain.TimeOfDay{Hour: 8, Minute: 10},
			Volume: 1.5, Active: true, RecordedAt: at,
			Params: &domain.WateringParams{RequiredSoilHumidity: 45, RequiredLight: 300, Volume: 1.5},
		},
		{
			PlantName: "Menthe", SessionID: "s2", Kind: domain.KindManual,
			Volume: 2, RecordedAt: at.Add(time.Hour),
		},
	}
	hum := 45.0
	monthly := []services.MonthlyStat{{Year: 2025, Month: 6, PlantName: "Basilic", Count: 1, Volume: 1.5, Automatic: 1, AvgHumidity: &hum}}

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	raw, err := HistoryWorkbook(entries, monthly, paris)
	if err != nil {
		t.Fatalf("HistoryWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != HistorySheet || got[1] != MonthlySheet {
		t.Fatalf("sheets = %v", got)
	}

	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2025-06-10 08:30:00" || rows[1][1] != "Basilic" || rows[1][3] != "automatique" || rows[1][9] != "oui" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][3] != "manuel" || rows[2][7] != "" || rows[2][9] != "non" {
		t.Fatalf("unexpected manual row: %v", rows[2])
	}

	stats, err := f.GetRows(MonthlySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(stats) != 2 || stats[1][0] != "2025" || stats[1][2] != "Basilic" || stats[1][8] != "45" {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestHistoryWorkbook_Empty(t *testing.T) {
	raw, err := HistoryWorkbook(nil, nil, nil)
	if err != nil || len(raw) == 0 {
		t.Fatalf("empty workbook: %d bytes, %v", len(raw), err)
	}
	if got := Filename(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)); got != "historique-arrosage-2025-01-02.xlsx" {
		t.Fatalf("Filename = %q", got)
	}
}
