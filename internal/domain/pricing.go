package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for pricing schedule editing.
var (
	ErrPeriodIndexOutOfRange = errors.New("price period index out of range")
	ErrLastPricePeriod       = errors.New("at least one price period is required")
	ErrInvalidTimestamp      = errors.New("invalid timestamp")
	ErrInvalidField          = errors.New("invalid price period field")
)

// PricePeriod is one tier of a game's dynamic pricing schedule, valid during [Starts, Ends).
// A nil Ends marks the open-ended period, which is only legitimate as the last entry.
// swagger:model PricePeriod
type PricePeriod struct {
	Starts time.Time  `json:"starts"`
	Ends   *time.Time `json:"ends,omitempty"`
	Price  int        `json:"price"`
}

// OpenEnded reports whether the period has no end bound.
func (p PricePeriod) OpenEnded() bool {
	return p.Ends == nil
}

// Contains reports whether t falls inside [Starts, Ends). Open-ended periods have no upper bound.
func (p PricePeriod) Contains(t time.Time) bool {
	if t.Before(p.Starts) {
		return false
	}
	return p.Ends == nil || t.Before(*p.Ends)
}

// PriceField names an editable field of a PricePeriod.
type PriceField string

const (
	FieldStarts PriceField = "starts"
	FieldEnds   PriceField = "ends"
	FieldPrice  PriceField = "price"
)

// Valid reports whether f is one of the editable fields.
func (f PriceField) Valid() bool {
	switch f {
	case FieldStarts, FieldEnds, FieldPrice:
		return true
	}
	return false
}

// ValidationResult is the verdict of checking a pricing schedule.
// PeriodIndex is 1-based and only set when Valid is false.
// swagger:model ValidationResult
type ValidationResult struct {
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason,omitempty"`
	PeriodIndex int    `json:"period_index,omitempty"`
}

// ScheduleError is returned when a schedule that fails validation is submitted for saving.
type ScheduleError struct {
	Result ValidationResult
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("invalid pricing schedule: %s", e.Result.Reason)
}

// ScheduleEdit is the outcome of one editor operation: the new schedule and its verdict.
// swagger:model ScheduleEdit
type ScheduleEdit struct {
	Periods    []PricePeriod    `json:"periods"`
	Validation ValidationResult `json:"validation"`
}

// PricingEditor drives the admin schedule form. Every call takes the form's current
// schedule and returns a new one; the input is never modified.
type PricingEditor interface {
	Append(periods []PricePeriod) ScheduleEdit
	Insert(periods []PricePeriod, index int) (ScheduleEdit, error)
	SetField(periods []PricePeriod, index int, field PriceField, value string) (ScheduleEdit, error)
	Remove(periods []PricePeriod, index int) (ScheduleEdit, error)
	Validate(periods []PricePeriod) ValidationResult
}
