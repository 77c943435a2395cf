package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/actuator"
	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
)

// ReadSensors godoc
// @ID          readSensors
// @Summary     Latest sensor sample from the device
// @Description When the device cannot be reached the empty sample is returned with success=false and status 200, so dashboards keep rendering.
// @Tags        Sensors
// @Produce     json
// @Success     200  {object}  handlers.Envelope{data=actuator.SensorReading}
// @Router      /capteurs/lecture [get]
func (h *Handlers) ReadSensors(c *gin.Context) {
	if h.d.Sensors == nil {
		c.JSON(http.StatusOK, Envelope{Success: false, Message: "sensors not configured", Data: actuator.EmptyReading()})
		return
	}
	r, err := h.d.Sensors.ReadSensors(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("code", ErrCodeSensors).Msg("sensor read failed")
		c.JSON(http.StatusOK, Envelope{Success: false, Message: "sensors unavailable", Data: actuator.EmptyReading()})
		return
	}
	ok(c, http.StatusOK, "sensor reading", r)
}
