package actuator

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// commandsTotal counts bridge calls by command and outcome
// (ok | nack | error).
var commandsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "irrigation_actuator_commands_total",
		Help: "Total number of actuator bridge calls by command and outcome.",
	},
	[]string{"command", "outcome"},
)

func init() {
	prometheus.MustRegister(commandsTotal)
}

func observe(command string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotAcknowledged):
		outcome = "nack"
	default:
		outcome = "error"
	}
	commandsTotal.WithLabelValues(command, outcome).Inc()
}
