// Package actuator is the client side of the remote pump/sensor bridge.
//
// The bridge exposes a tiny HTTP contract: POST start and stop commands
// that answer {"success": bool, "message": string}, and a GET sensor
// endpoint that answers the latest reading. Failures here never touch local
// state; callers decide what to do with an error.
package actuator

import (
	"context"
	"errors"
)

// ErrNotAcknowledged is returned when the bridge answered but did not report
// success for a command.
var ErrNotAcknowledged = errors.New("actuator did not acknowledge command")

// Gateway is the command surface of the pump/sensor device.
type Gateway interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	ReadSensors(ctx context.Context) (*SensorReading, error)
}

// SensorReading is one sample from the device. Field names follow the
// bridge's JSON payload.
type SensorReading struct {
	Humidity   int    `json:"humidite"`
	Light      int    `json:"lumiere"`
	WaterLevel int    `json:"niveau_eau"`
	PumpState  int    `json:"etat_pompe"`
	Mode       string `json:"mode"`
	Status     string `json:"status,omitempty"`
}

// EmptyReading is the zero sample reported when the device is unreachable.
func EmptyReading() SensorReading {
	return SensorReading{Mode: "AUTO", Status: "no_data"}
}

// commandReply is the bridge's answer to start/stop.
type commandReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
