// Package history holds the append-only migration history of the
// application. Steps are never edited once released; schema evolution is a
// new step appended to its group.
package history

import (
	"sync"

	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

// All returns the full history in application order.
func All() []m.Step {
	return []m.Step{
		agencyInitial,
		agencyEmployeeRoleChoices,
		agencyEmployeeRoleLength,
		maidInitial,
		maidEmploymentWorkDuties,
		maidStatusTransferDates,
		maidSeedWorkDuties,
		paymentInitial,
		enquiryInitial,
		notificationInitial,
		enquiryShortlisted,
		shortlistInitial,
	}
}

var (
	currentOnce  sync.Once
	currentState *schema.State
	currentErr   error
)

// Current is the schema registry: the authoritative entity shapes, derived
// by replaying the whole history.
func Current() (*schema.State, error) {
	currentOnce.Do(func() {
		currentState, currentErr = m.Replay(All())
	})
	if currentErr != nil {
		return nil, currentErr
	}
	return currentState.Clone(), nil
}
