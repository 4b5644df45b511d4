package model

import (
	"github.com/cockroachdb/errors"

	"onlinemaid-backend/internal/schema"
)

var (
	ErrInvalidChoice  = errors.New("value outside of enumerated domain")
	ErrNegative       = errors.New("value must not be negative")
	ErrInvalidRange   = errors.New("end precedes start")
	ErrInvalidContact = errors.New("please enter a valid contact number")
)

func checkChoice(field, value string, cs schema.ChoiceSet) error {
	if !cs.Contains(value) {
		return errors.Wrapf(ErrInvalidChoice, "%s=%q", field, value)
	}
	return nil
}

func checkOptionalChoice(field string, value *string, cs schema.ChoiceSet) error {
	if value == nil {
		return nil
	}
	return checkChoice(field, *value, cs)
}

// checkNonNegative takes field/value pairs.
func checkNonNegative(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case int:
			if v < 0 {
				return errors.Wrapf(ErrNegative, "%s=%d", name, v)
			}
		case *int:
			if v != nil && *v < 0 {
				return errors.Wrapf(ErrNegative, "%s=%d", name, *v)
			}
		}
	}
	return nil
}
