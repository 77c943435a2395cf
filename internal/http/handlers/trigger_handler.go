// Manual watering HTTP handlers.
//
//   - POST /arrosage/manuel/plante/{planteId}  (idempotent with Idempotency-Key)
//   - POST /arrosage/manuel/global
//   - POST /arrosage/stop
//   - GET  /arrosage/scheduled                 (scheduler preview)
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// TriggerRequest optionally overrides the volume of a manual watering.
type TriggerRequest struct {
	Volume *float64 `json:"volumeEau" example:"1.2"`
}

// GlobalTriggerResponse lists the sessions created by a global trigger.
type GlobalTriggerResponse struct {
	Plants   int                  `json:"nombrePlantes"`
	Sessions []services.Triggered `json:"arrosages"`
}

// TriggerPlant godoc
// @ID          triggerPlant
// @Summary     Water one plant now
// @Description Creates a manual session covering the next few minutes. The volume defaults to the plant's maximum.
// @Description A repeated Idempotency-Key replays the original session instead of creating another.
// @Tags        Manual
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string                   false  "Key for safe retries"
// @Param       planteId         path    string                   true   "Plant ID"  format(uuid)
// @Param       body             body    handlers.TriggerRequest  false  "Optional volume"
// @Success     200  {object}  handlers.Envelope{data=services.Triggered}
// @Header      200  {string}  Idempotency-Replayed  "true when replayed"
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /arrosage/manuel/plante/{planteId} [post]
func (h *Handlers) TriggerPlant(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	key, keyed := middleware.GetIdempotencyKey(c)
	scope := middleware.GetIdempotencyScope(c)
	if keyed && h.d.Idem != nil && h.replayTrigger(c, uid, scope, key) {
		return
	}

	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", err.Error())
		return
	}

	out, err := h.d.Triggers.TriggerPlant(ctx, uid, c.Param("planteId"), req.Volume)
	if err != nil {
		failFromError(c, err)
		return
	}

	if keyed && h.d.Idem != nil {
		if err := h.d.Idem.Save(ctx, uid, scope, key, out.Session.ID, http.StatusOK); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("store idempotency record")
		}
	}
	ok(c, http.StatusOK, "manual watering triggered", out)
}

// replayTrigger answers with the session recorded for key, if any.
func (h *Handlers) replayTrigger(c *gin.Context, uid, scope, key string) bool {
	ctx := c.Request.Context()
	rec, err := h.d.Idem.Find(ctx, uid, scope, key, h.d.Now().UTC())
	if err != nil || rec == nil {
		return false
	}
	prev, err := h.d.Sessions.Get(ctx, uid, rec.ResourceID)
	if err != nil {
		return false
	}
	c.Header(middleware.HeaderReplayed, "true")
	ok(c, rec.Status, "manual watering already triggered", services.Triggered{Session: prev})
	return true
}

// TriggerAll godoc
// @ID          triggerAll
// @Summary     Water every plant now
// @Description Starts the pump, then records one manual session per plant at its maximum volume.
// @Tags        Manual
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=handlers.GlobalTriggerResponse}
// @Failure     404  {object}  handlers.ErrorResponse  "No plants"
// @Failure     502  {object}  handlers.ErrorResponse  "Actuator failure"
// @Router      /arrosage/manuel/global [post]
func (h *Handlers) TriggerAll(c *gin.Context) {
	out, err := h.d.Triggers.TriggerAll(c.Request.Context(), userID(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "global manual watering triggered", GlobalTriggerResponse{Plants: len(out), Sessions: out})
}

// EmergencyStop godoc
// @ID          emergencyStop
// @Summary     Stop the pump and deactivate every active session
// @Tags        Manual
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=services.StopResult}
// @Failure     502  {object}  handlers.ErrorResponse  "Actuator failure"
// @Router      /arrosage/stop [post]
func (h *Handlers) EmergencyStop(c *gin.Context) {
	res, err := h.d.Triggers.EmergencyStop(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "watering stopped", res)
}

// ScheduledPreview godoc
// @ID          scheduledPreview
// @Summary     Sessions due to start or stop this minute
// @Description Read-only view of the scheduler; the actuator is not called.
// @Tags        Manual
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=services.TickReport}
// @Router      /arrosage/scheduled [get]
func (h *Handlers) ScheduledPreview(c *gin.Context) {
	rep, err := h.d.Scheduler.Preview(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "scheduled sessions", rep)
}
