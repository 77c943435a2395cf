// History and statistics HTTP handlers, scoped to the calling user.
//
//   - GET    /historique                       (paginated, date filters)
//   - GET    /historique/plante/{planteId}     (paginated, one plant)
//   - DELETE /historique/{historiqueId}
//   - GET    /historique/statistiques          (monthly aggregates)
//   - GET    /historique/statistiques/{periode}
//   - GET    /historique/export.xlsx
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/export"
	"github.com/tbourn/go-irrigation-backend/internal/services"
	"github.com/tbourn/go-irrigation-backend/internal/utils"
)

// DefaultHistoryLimit is the page size when none is given.
const DefaultHistoryLimit = 10

// dateRange reads dateDebut/dateFin. A date-only dateFin covers the whole day.
func (h *Handlers) dateRange(c *gin.Context) (from, to *time.Time, okay bool) {
	from, err := utils.ParseDate(c.Query("dateDebut"), false, h.d.Loc)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "dateDebut: "+err.Error())
		return nil, nil, false
	}
	to, err = utils.ParseDate(c.Query("dateFin"), true, h.d.Loc)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "dateFin: "+err.Error())
		return nil, nil, false
	}
	return from, to, true
}

// historyQuery builds a page query from the request, answering 400 on bad input.
func (h *Handlers) historyQuery(c *gin.Context, plantID string) (services.HistoryQuery, bool) {
	page, err := utils.PositiveInt(c.Query("page"), 1)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "page: "+err.Error())
		return services.HistoryQuery{}, false
	}
	limit, err := utils.PositiveInt(c.Query("limit"), DefaultHistoryLimit)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "limit: "+err.Error())
		return services.HistoryQuery{}, false
	}
	from, to, okay := h.dateRange(c)
	if !okay {
		return services.HistoryQuery{}, false
	}
	return services.HistoryQuery{
		UserID:  userID(c),
		PlantID: plantID,
		Page:    page,
		Limit:   limit,
		From:    from,
		To:      to,
	}, true
}

// ListHistory godoc
// @ID          listHistory
// @Summary     Page through the caller's watering history
// @Description Newest first. A page past the last one answers 404.
// @Tags        History
// @Produce     json
// @Param       page       query  int     false  "Page (>=1)"          default(1)
// @Param       limit      query  int     false  "Page size (1..100)"  default(10)
// @Param       dateDebut  query  string  false  "From (YYYY-MM-DD or RFC3339)"
// @Param       dateFin    query  string  false  "To, inclusive (YYYY-MM-DD or RFC3339)"
// @Success     200  {object}  handlers.Envelope{data=services.HistoryPage}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /historique [get]
func (h *Handlers) ListHistory(c *gin.Context) {
	q, okay := h.historyQuery(c, "")
	if !okay {
		return
	}
	h.respondPage(c, q)
}

// PlantHistory godoc
// @ID          plantHistory
// @Summary     Page through the caller's history for one plant
// @Tags        History
// @Produce     json
// @Param       planteId   path   string  true   "Plant ID"  format(uuid)
// @Param       page       query  int     false  "Page (>=1)"          default(1)
// @Param       limit      query  int     false  "Page size (1..100)"  default(10)
// @Param       dateDebut  query  string  false  "From"
// @Param       dateFin    query  string  false  "To, inclusive"
// @Success     200  {object}  handlers.Envelope{data=services.HistoryPage}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /historique/plante/{planteId} [get]
func (h *Handlers) PlantHistory(c *gin.Context) {
	q, okay := h.historyQuery(c, c.Param("planteId"))
	if !okay {
		return
	}
	h.respondPage(c, q)
}

func (h *Handlers) respondPage(c *gin.Context, q services.HistoryQuery) {
	page, err := h.d.History.List(c.Request.Context(), q)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering history", page)
}

// DeleteHistory godoc
// @ID          deleteHistory
// @Summary     Delete one history entry
// @Tags        History
// @Produce     json
// @Param       historiqueId  path  string  true  "History entry ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /historique/{historiqueId} [delete]
func (h *Handlers) DeleteHistory(c *gin.Context) {
	if err := h.d.History.Delete(c.Request.Context(), userID(c), c.Param("historiqueId")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "history entry deleted", nil)
}

// MonthlyStats godoc
// @ID          monthlyStats
// @Summary     Monthly aggregates per plant
// @Tags        History
// @Produce     json
// @Param       dateDebut  query  string  false  "From"
// @Param       dateFin    query  string  false  "To, inclusive"
// @Success     200  {object}  handlers.Envelope{data=[]services.MonthlyStat}
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /historique/statistiques [get]
func (h *Handlers) MonthlyStats(c *gin.Context) {
	from, to, okay := h.dateRange(c)
	if !okay {
		return
	}
	stats, err := h.d.Stats.Monthly(c.Request.Context(), userID(c), from, to)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "monthly statistics", stats)
}

// PeriodStats godoc
// @ID          periodStats
// @Summary     Week or month time series
// @Tags        History
// @Produce     json
// @Param       periode  path  string  true  "semaine or mois"  Enums(semaine, mois)
// @Success     200  {object}  handlers.Envelope{data=services.PeriodStats}
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /historique/statistiques/{periode} [get]
func (h *Handlers) PeriodStats(c *gin.Context) {
	stats, err := h.d.Stats.Period(c.Request.Context(), userID(c), c.Param("periode"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, fmt.Sprintf("statistics (%s)", stats.Period), stats)
}

// ExportHistory godoc
// @ID          exportHistory
// @Summary     Download history and monthly statistics as XLSX
// @Tags        History
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       planteId   query  string  false  "Restrict to one plant"
// @Param       dateDebut  query  string  false  "From"
// @Param       dateFin    query  string  false  "To, inclusive"
// @Success     200  {file}    file
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /historique/export.xlsx [get]
func (h *Handlers) ExportHistory(c *gin.Context) {
	from, to, okay := h.dateRange(c)
	if !okay {
		return
	}
	ctx := c.Request.Context()
	uid := userID(c)

	entries, err := h.d.History.All(ctx, uid, c.Query("planteId"), from, to)
	if err != nil {
		failFromError(c, err)
		return
	}
	monthly, err := h.d.Stats.Monthly(ctx, uid, from, to)
	if err != nil {
		failFromError(c, err)
		return
	}
	body, err := export.HistoryWorkbook(entries, monthly, h.d.Loc)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeExportFails, "could not build the workbook")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(h.d.Now().In(h.d.Loc))))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, export.ContentType, body)
}
