// Watering session HTTP handlers, scoped to the calling user.
//
//   - POST   /arrosage              (create)
//   - GET    /arrosage              (list, newest first, ETag support)
//   - GET    /arrosage/{id}
//   - PUT    /arrosage/{id}         (partial update, writes a history snapshot)
//   - PATCH  /arrosage/{id}/toggle  (flip actif, no history)
//   - DELETE /arrosage/{id}         (history is kept)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// ParamsRequest carries automatic watering thresholds. The nested volume is
// accepted for compatibility and ignored; the top-level volumeEau wins.
type ParamsRequest struct {
	RequiredSoilHumidity *float64 `json:"humiditeSolRequise" example:"45"`
	RequiredLight        *float64 `json:"luminositeRequise"  example:"300"`
	Volume               *float64 `json:"volumeEau,omitempty"`
}

func (p *ParamsRequest) input() *services.ParamsInput {
	if p == nil {
		return nil
	}
	return &services.ParamsInput{RequiredSoilHumidity: p.RequiredSoilHumidity, RequiredLight: p.RequiredLight}
}

// CreateSessionRequest is the payload of POST /arrosage.
type CreateSessionRequest struct {
	PlantID string            `json:"plante"             example:"0a9e6c1e-6a55-4c61-9d3c-2f8b8f0c1d2e"`
	Kind    domain.Kind       `json:"type"               example:"automatique"`
	Start   *domain.TimeOfDay `json:"heureDebut"`
	End     *domain.TimeOfDay `json:"heureFin"`
	Volume  *float64          `json:"volumeEau"          example:"1.5"`
	Params  *ParamsRequest    `json:"parametresArrosage"`
}

// UpdateSessionRequest is the payload of PUT /arrosage/{id}.
type UpdateSessionRequest struct {
	Start  *domain.TimeOfDay `json:"heureDebut"`
	End    *domain.TimeOfDay `json:"heureFin"`
	Volume *float64          `json:"volumeEau"`
	Active *bool             `json:"actif"`
	Params *ParamsRequest    `json:"parametresArrosage"`
}

// SessionWithHistory pairs a session with the snapshot its mutation wrote.
type SessionWithHistory struct {
	Session *domain.WateringSession `json:"arrosage"`
	History *domain.HistoryEntry    `json:"historique"`
}

// CreateSession godoc
// @ID          createSession
// @Summary     Create a watering session
// @Description Validates the window, the volume and (for automatic sessions) the thresholds against the plant, then records the first history snapshot.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateSessionRequest  true  "Session"
// @Success     201  {object}  handlers.Envelope{data=handlers.SessionWithHistory}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.PlantID == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "plante is required")
		return
	}
	if req.Start == nil || req.End == nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "heureDebut and heureFin are required")
		return
	}
	if req.Volume == nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "volumeEau is required")
		return
	}

	sess, hist, err := h.d.Sessions.Create(c.Request.Context(), userID(c), services.SessionInput{
		PlantID: req.PlantID,
		Kind:    req.Kind,
		Start:   *req.Start,
		End:     *req.End,
		Volume:  *req.Volume,
		Params:  req.Params.input(),
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, "watering session created", SessionWithHistory{Session: sess, History: hist})
}

// ListSessions godoc
// @ID          listSessions
// @Summary     List the caller's sessions
// @Tags        Sessions
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.Envelope{data=[]domain.WateringSession}
// @Success     304  {string}  string  "Not Modified"
// @Router      /arrosage [get]
func (h *Handlers) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	if h.d.Versions != nil {
		if n, last, err := h.d.Versions.SessionsVersion(ctx, uid); err == nil && notModified(c, "sessions", uid, n, last) {
			return
		}
	}
	items, err := h.d.Sessions.List(ctx, uid)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering sessions", items)
}

// GetSession godoc
// @ID          getSession
// @Summary     Get one of the caller's sessions
// @Tags        Sessions
// @Produce     json
// @Param       id  path  string  true  "Session ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope{data=domain.WateringSession}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	s, err := h.d.Sessions.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering session", s)
}

// UpdateSession godoc
// @ID          updateSession
// @Summary     Update a session
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id    path  string                         true  "Session ID"  format(uuid)
// @Param       body  body  handlers.UpdateSessionRequest  true  "Fields to change"
// @Success     200  {object}  handlers.Envelope{data=handlers.SessionWithHistory}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage/{id} [put]
func (h *Handlers) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, hist, err := h.d.Sessions.Update(c.Request.Context(), userID(c), c.Param("id"), services.SessionPatch{
		Start:  req.Start,
		End:    req.End,
		Volume: req.Volume,
		Active: req.Active,
		Params: req.Params.input(),
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering session updated", SessionWithHistory{Session: sess, History: hist})
}

// ToggleSession godoc
// @ID          toggleSession
// @Summary     Enable or disable a session
// @Tags        Sessions
// @Produce     json
// @Param       id  path  string  true  "Session ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope{data=domain.WateringSession}
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage/{id}/toggle [patch]
func (h *Handlers) ToggleSession(c *gin.Context) {
	s, err := h.d.Sessions.Toggle(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	msg := "watering session disabled"
	if s.Active {
		msg = "watering session enabled"
	}
	ok(c, http.StatusOK, msg, s)
}

// DeleteSession godoc
// @ID          deleteSession
// @Summary     Delete a session (history is kept)
// @Tags        Sessions
// @Produce     json
// @Param       id  path  string  true  "Session ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage/{id} [delete]
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.d.Sessions.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering session deleted", nil)
}
