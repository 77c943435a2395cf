// Package services defines the business logic of the irrigation core: plant
// registry, watering session lifecycle, manual triggers, the scheduler tick,
// and the history ledger with its statistics.
//
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers. Detail is
// attached with fmt.Errorf("%w: ...") so errors.Is keeps working.
// Translation into HTTP status codes is performed by the handler layer.
package services

import "errors"

var (
	// ErrValidation covers malformed or out-of-range input, missing automatic
	// parameters, time-window violations and plant threshold violations.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned for identifiers that cannot be valid.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrPlantNotFound indicates that the referenced plant does not exist.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrNoPlants is returned by the global trigger when the registry is empty.
	ErrNoPlants = errors.New("no plants registered")

	// ErrSessionNotFound indicates that the session does not exist or is not
	// owned by the requesting user.
	ErrSessionNotFound = errors.New("watering session not found")

	// ErrHistoryNotFound indicates that the history entry does not exist or
	// is not owned by the requesting user.
	ErrHistoryNotFound = errors.New("history entry not found")

	// ErrPageNotFound is returned when a page past the last one is requested.
	ErrPageNotFound = errors.New("page not found")

	// ErrActuatorFailure wraps a start/stop that did not succeed. Local state
	// is left unchanged when it is returned.
	ErrActuatorFailure = errors.New("actuator failure")

	// ErrPersistence wraps storage-layer failures.
	ErrPersistence = errors.New("persistence failure")
)
