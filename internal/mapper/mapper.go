// Package mapper validates and reshapes raw content-store documents into
// domain entities. It is the only place that knows the store's wire quirks:
// nested-vs-flat relation shapes, null for absent fields, and legacy records
// predating newer required fields. Nothing past this package sees raw JSON.
package mapper

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/mkrogh/boldklub/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode unmarshals a raw document into the wire struct T and checks its
// validate tags. Structural mismatches surface as validation-failed errors
// carrying the diagnostics and the offending payload; they indicate schema
// drift to fix here, never a condition to retry.
func decode[T any](raw json.RawMessage) (T, error) {
	var wire T
	if err := json.Unmarshal(raw, &wire); err != nil {
		return wire, apperr.Validation("Indholdet fra serveren kunne ikke læses.").
			WithCause(err).
			WithDetails(map[string]any{"raw": json.RawMessage(raw)})
	}
	if err := validate.Struct(wire); err != nil {
		return wire, apperr.Validation("Indholdet fra serveren mangler påkrævede felter.").
			WithCause(err).
			WithDetails(map[string]any{"diagnostics": err.Error(), "raw": json.RawMessage(raw)})
	}
	return wire, nil
}

// safeMap turns a mapping failure into a logged nil so one malformed record
// cannot fail an entire collection fetch. Callers filter the nils out.
func safeMap[T any](raw json.RawMessage, entity string, mapFn func(json.RawMessage) (T, error)) *T {
	mapped, err := mapFn(raw)
	if err != nil {
		log.Error("Skipping malformed record", "entity", entity, "error", err)
		return nil
	}
	return &mapped
}
