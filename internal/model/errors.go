package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInputSchema marks a missing or malformed required input column or value.
	ErrInputSchema = errors.New("input schema error")
	// ErrSchemaMismatch marks events handed to the merger without required fields.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrEmptyInput marks a run with nothing to project from.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownChargeTo marks an event whose charge_to has no balance rule.
	ErrUnknownChargeTo = errors.New("unknown charge_to")
)

// SchemaError reports every offending row of a table at once.
// errors.Is matches both Kind and anything wrapped by Err.
type SchemaError struct {
	Kind  error
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v in %s: %v", e.Kind, e.Table, e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
