package astro

import (
	"errors"
	"fmt"
)

// FaultError represents a validation fault in a derived computation.
//
// Faults are distinct from missing-data degrades: a gate or line index
// outside its legal range means an upstream longitude was never normalized,
// which is a defect, not an absence. Callers must fail the affected
// computation rather than emit the value.
type FaultError struct {
	// Code identifies the fault category.
	Code FaultCode

	// Message is a human-readable description.
	Message string

	// Longitude is the input that produced the fault.
	Longitude float64
}

// FaultCode categorizes validation faults.
type FaultCode string

const (
	// FaultGateRange indicates a gate index outside [1, 64].
	FaultGateRange FaultCode = "GATE_RANGE"

	// FaultLineRange indicates a line index outside [1, 6].
	FaultLineRange FaultCode = "LINE_RANGE"
)

// Error implements the error interface.
func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %s (longitude=%v)", e.Code, e.Message, e.Longitude)
}

// IsFault returns true if the error is a validation fault.
// Uses errors.As to handle wrapped errors.
func IsFault(err error) bool {
	var fe *FaultError
	return errors.As(err, &fe)
}

func newGateFault(gate int, lon float64) *FaultError {
	return &FaultError{
		Code:      FaultGateRange,
		Message:   fmt.Sprintf("gate %d outside [1,64]; longitude not normalized", gate),
		Longitude: lon,
	}
}

func newLineFault(line int, lon float64) *FaultError {
	return &FaultError{
		Code:      FaultLineRange,
		Message:   fmt.Sprintf("line %d outside [1,6]; longitude not normalized", line),
		Longitude: lon,
	}
}
