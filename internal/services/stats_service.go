// Package services – StatsService
//
// StatsService derives read-only projections from the history ledger:
// per-plant monthly aggregates and week/month time series. Aggregation runs
// in Go over the filtered entries so both storage drivers behave the same.
package services

import (
	"context"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
)

// Supported period names.
const (
	PeriodWeek  = "semaine"
	PeriodMonth = "mois"
)

// MonthlyStat aggregates one plant over one calendar month. Averages are
// computed over entries that carry automatic parameters and are nil when
// there are none.
type MonthlyStat struct {
	PlantID       string   `json:"plante"`
	PlantName     string   `json:"nomPlante"`
	PlantCategory string   `json:"categoriePlante"`
	Month         int      `json:"mois"`
	Year          int      `json:"annee"`
	Count         int      `json:"nombreArrosages"`
	Volume        float64  `json:"volumeTotalEau"`
	Automatic     int      `json:"arrosagesAutomatiques"`
	Manual        int      `json:"arrosagesManuels"`
	AvgHumidity   *float64 `json:"humiditeMoyenne"`
	AvgLight      *float64 `json:"luminositeMoyenne"`
}

// PeriodRow aggregates one plant over one bucket of a period series.
type PeriodRow struct {
	Date          string   `json:"date"`
	PlantID       string   `json:"plante"`
	PlantName     string   `json:"nomPlante"`
	PlantCategory string   `json:"categoriePlante"`
	Volume        float64  `json:"volumeEauTotal"`
	AvgHumidity   *float64 `json:"humiditeSolMoyenne"`
	AvgLight      *float64 `json:"luminositeMoyenne"`
	Count         int      `json:"nombreArrosages"`
	Automatic     int      `json:"arrosagesAutomatiques"`
	Manual        int      `json:"arrosagesManuels"`
}

// SeriesPoint is one zero-filled bucket of the period summary.
type SeriesPoint struct {
	Date   string  `json:"date"`
	Count  int     `json:"nombreArrosages"`
	Volume float64 `json:"volumeEauTotal"`
}

// PlantTotals summarizes one plant over the whole period.
type PlantTotals struct {
	PlantID       string  `json:"plante"`
	PlantName     string  `json:"nomPlante"`
	PlantCategory string  `json:"categoriePlante"`
	Count         int     `json:"nombreArrosages"`
	Volume        float64 `json:"volumeEauTotal"`
	Automatic     int     `json:"arrosagesAutomatiques"`
	Manual        int     `json:"arrosagesManuels"`
}

// Totals are the period-wide sums.
type Totals struct {
	Count     int     `json:"totalArrosages"`
	Volume    float64 `json:"volumeTotalEau"`
	Automatic int     `json:"arrosagesAutomatiques"`
	Manual    int     `json:"arrosagesManuels"`
}

// PeriodStats is the week/month time series report.
type PeriodStats struct {
	Period   string        `json:"periode"`
	From     time.Time     `json:"dateDebut"`
	To       time.Time     `json:"dateFin"`
	Summary  []SeriesPoint `json:"resume"`
	Rows     []PeriodRow   `json:"statistiques"`
	PerPlant []PlantTotals `json:"statsParPlante"`
	Totals   Totals        `json:"totaux"`
}

// StatsService computes history aggregates.
type StatsService struct {
	DB  *gorm.DB
	Now func() time.Time
	Loc *time.Location
}

// Monthly groups the user's history by plant, month and year, sorted by
// year and month descending, then plant name ascending.
func (s *StatsService) Monthly(ctx context.Context, userID string, from, to *time.Time) ([]MonthlyStat, error) {
	ctx, span := otel.Tracer("services/StatsService").Start(ctx, "Monthly",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	loc := clock{Loc: s.Loc}.location()
	type key struct {
		plant       string
		year, month int
	}
	groups := map[key]*MonthlyStat{}
	avgs := map[key]*averager{}
	for i := range entries {
		e := &entries[i]
		at := e.RecordedAt.In(loc)
		k := key{e.PlantID, at.Year(), int(at.Month())}
		g, ok := groups[k]
		if !ok {
			g = &MonthlyStat{PlantID: e.PlantID, PlantName: e.PlantName, PlantCategory: e.PlantCategory, Month: k.month, Year: k.year}
			groups[k] = g
			avgs[k] = &averager{}
		}
		g.Count++
		g.Volume += e.Volume
		countKind(e.Kind, &g.Automatic, &g.Manual)
		avgs[k].add(e.Params)
	}

	out := make([]MonthlyStat, 0, len(groups))
	for k, g := range groups {
		g.Volume = round2(g.Volume)
		g.AvgHumidity, g.AvgLight = avgs[k].result()
		out = append(out, *g)
	}
	col := collate.New(language.French)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		if c := col.CompareString(a.PlantName, b.PlantName); c != 0 {
			return c < 0
		}
		return a.PlantID < b.PlantID
	})
	return out, nil
}

// Period builds the "semaine" (seven daily buckets ending today) or "mois"
// (calendar months from one month ago to now) series for the user.
func (s *StatsService) Period(ctx context.Context, userID, period string) (*PeriodStats, error) {
	ctx, span := otel.Tracer("services/StatsService").Start(ctx, "Period",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("period", period)))
	defer span.End()

	now := clock{Now: s.Now, Loc: s.Loc}.now()
	var from time.Time
	var layout string
	var buckets []string
	switch period {
	case PeriodWeek:
		layout = "2006-01-02"
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		from = today.AddDate(0, 0, -6)
		for d := 0; d < 7; d++ {
			buckets = append(buckets, from.AddDate(0, 0, d).Format(layout))
		}
	case PeriodMonth:
		layout = "2006-01"
		from = now.AddDate(0, -1, 0)
		first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, now.Location())
		for m := first; !m.After(now); m = m.AddDate(0, 1, 0) {
			buckets = append(buckets, m.Format(layout))
		}
	default:
		return nil, invalid("periode must be %q or %q", PeriodWeek, PeriodMonth)
	}

	entries, err := s.entries(ctx, userID, &from, &now)
	if err != nil {
		return nil, err
	}

	out := &PeriodStats{Period: period, From: from, To: now}
	series := make(map[string]*SeriesPoint, len(buckets))
	for _, b := range buckets {
		out.Summary = append(out.Summary, SeriesPoint{Date: b})
	}
	for i := range out.Summary {
		series[out.Summary[i].Date] = &out.Summary[i]
	}

	type key struct{ date, plant string }
	rows := map[key]*PeriodRow{}
	rowAvg := map[key]*averager{}
	plants := map[string]*PlantTotals{}
	for i := range entries {
		e := &entries[i]
		date := e.RecordedAt.In(now.Location()).Format(layout)
		if pt, ok := series[date]; ok {
			pt.Count++
			pt.Volume += e.Volume
		}

		k := key{date, e.PlantID}
		r, ok := rows[k]
		if !ok {
			r = &PeriodRow{Date: date, PlantID: e.PlantID, PlantName: e.PlantName, PlantCategory: e.PlantCategory}
			rows[k] = r
			rowAvg[k] = &averager{}
		}
		r.Count++
		r.Volume += e.Volume
		countKind(e.Kind, &r.Automatic, &r.Manual)
		rowAvg[k].add(e.Params)

		pt, ok := plants[e.PlantID]
		if !ok {
			pt = &PlantTotals{PlantID: e.PlantID, PlantName: e.PlantName, PlantCategory: e.PlantCategory}
			plants[e.PlantID] = pt
		}
		pt.Count++
		pt.Volume += e.Volume
		countKind(e.Kind, &pt.Automatic, &pt.Manual)

		out.Totals.Count++
		out.Totals.Volume += e.Volume
		countKind(e.Kind, &out.Totals.Automatic, &out.Totals.Manual)
	}

	col := collate.New(language.French)
	for k, r := range rows {
		r.Volume = round2(r.Volume)
		r.AvgHumidity, r.AvgLight = rowAvg[k].result()
		out.Rows = append(out.Rows, *r)
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if c := col.CompareString(a.PlantName, b.PlantName); c != 0 {
			return c < 0
		}
		return a.PlantID < b.PlantID
	})
	for _, p := range plants {
		p.Volume = round2(p.Volume)
		out.PerPlant = append(out.PerPlant, *p)
	}
	sort.Slice(out.PerPlant, func(i, j int) bool {
		if c := col.CompareString(out.PerPlant[i].PlantName, out.PerPlant[j].PlantName); c != 0 {
			return c < 0
		}
		return out.PerPlant[i].PlantID < out.PerPlant[j].PlantID
	})
	for i := range out.Summary {
		out.Summary[i].Volume = round2(out.Summary[i].Volume)
	}
	out.Totals.Volume = round2(out.Totals.Volume)
	if out.Rows == nil {
		out.Rows = []PeriodRow{}
	}
	if out.PerPlant == nil {
		out.PerPlant = []PlantTotals{}
	}
	return out, nil
}

func (s *StatsService) entries(ctx context.Context, userID string, from, to *time.Time) ([]domain.HistoryEntry, error) {
	items, err := repo.ListHistory(ctx, s.DB, repo.HistoryFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, persistence(err)
	}
	if err := attachHistoryPlants(ctx, s.DB, items); err != nil {
		return nil, err
	}
	return items, nil
}

type averager struct {
	n               int
	humidity, light float64
}

func (a *averager) add(p *domain.WateringParams) {
	if p == nil {
		return
	}
	a.n++
	a.humidity += p.RequiredSoilHumidity
	a.light += p.RequiredLight
}

func (a *averager) result() (*float64, *float64) {
	if a.n == 0 {
		return nil, nil
	}
	h := round2(a.humidity / float64(a.n))
	l := round2(a.light / float64(a.n))
	return &h, &l
}

func countKind(k domain.Kind, automatic, manual *int) {
	if k == domain.KindAutomatic {
		*automatic++
	} else {
		*manual++
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
