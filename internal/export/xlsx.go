// Package export renders watering history and statistics as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names.
const (
	HistorySheet = "Historique"
	MonthlySheet = "Statistiques"
)

var historyHeader = []any{
	"Date", "Plante", "Catégorie", "Type", "Début", "Fin",
	"Volume (L)", "Humidité requise", "Luminosité requise", "Actif", "Arrosage",
}

var monthlyHeader = []any{
	"Année", "Mois", "Plante", "Catégorie", "Arrosages", "Volume total (L)",
	"Automatiques", "Manuels", "Humidité moyenne", "Luminosité moyenne",
}

// HistoryWorkbook builds an XLSX file with one sheet of history entries
// (oldest first, as given) and one sheet of monthly statistics. Timestamps
// are written in loc; nil means UTC.
func HistoryWorkbook(entries []domain.HistoryEntry, monthly []services.MonthlyStat, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(MonthlySheet); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		var humidity, light any
		if e.Params != nil {
			humidity, light = e.Params.RequiredSoilHumidity, e.Params.RequiredLight
		}
		rows = append(rows, []any{
			e.RecordedAt.In(loc).Format("2006-01-02 15:04:05"),
			e.PlantName,
			e.PlantCategory,
			string(e.Kind),
			e.Start.String(),
			e.End.String(),
			e.Volume,
			humidity,
			light,
			yesNo(e.Active),
			e.SessionID,
		})
	}
	if err := writeSheet(f, HistorySheet, header, historyHeader, rows); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, m := range monthly {
		rows = append(rows, []any{
			m.Year, m.Month, m.PlantName, m.PlantCategory, m.Count, m.Volume,
			m.Automatic, m.Manual, optional(m.AvgHumidity), optional(m.AvgLight),
		})
	}
	if err := writeSheet(f, MonthlySheet, header, monthlyHeader, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename names the download for the given day.
func Filename(day time.Time) string {
	return "historique-arrosage-" + day.Format("2006-01-02") + ".xlsx"
}

func writeSheet(f *excelize.File, sheet string, style int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
