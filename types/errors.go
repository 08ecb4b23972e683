// Package types holds shared types and the error taxonomy for TripWing.
package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the reasoning core. Callers use errors.Is to
// distinguish user-actionable conditions from generic failures.
var (
	// ErrDimensionMismatch is returned when two vectors of different
	// dimensionality are compared.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrModelNotReady signals that the on-device engine is not downloaded
	// or otherwise unavailable. Distinct from generic failure so the caller
	// can prompt the user to download the model.
	ErrModelNotReady = errors.New("model not downloaded")

	// ErrNoTarget is returned when a modification command names no
	// resolvable itinerary item.
	ErrNoTarget = errors.New("no matching activity found")

	// ErrNoSlot is returned when no free block fits the requested duration.
	ErrNoSlot = errors.New("no free slot available")

	// ErrPendingAction is returned when a new modification request arrives
	// while a proposed action is still awaiting confirmation.
	ErrPendingAction = errors.New("a proposed change is already pending")

	// ErrNotFound is returned for lookups of unknown trips, days or items.
	ErrNotFound = errors.New("not found")
)

// PlanError provides structured error information for plan generation
// failures, carrying a machine-readable code alongside the message.
type PlanError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewPlanError creates a new structured plan error.
func NewPlanError(code, message string) *PlanError {
	return &PlanError{Code: code, Message: message}
}

// Plan error codes.
const (
	PlanErrCloudUnavailable = "cloud_unavailable"
	PlanErrEmptyPlan        = "empty_plan"
	PlanErrBadResponse      = "bad_response"
)
