package services

import (
	"zone37/internal/domain"
	"zone37/internal/pricing"
)

type pricingEditor struct {
	manager *pricing.Manager
}

// NewPricingEditor returns a PricingEditor backed by the given schedule manager.
// Index arguments are checked here so the HTTP layer can answer 400 instead of
// silently getting the schedule back unchanged.
func NewPricingEditor(manager *pricing.Manager) domain.PricingEditor {
	return &pricingEditor{manager: manager}
}

func (e *pricingEditor) Append(periods []domain.PricePeriod) domain.ScheduleEdit {
	return newScheduleEdit(e.manager.Append(periods))
}

func (e *pricingEditor) Insert(periods []domain.PricePeriod, index int) (domain.ScheduleEdit, error) {
	if err := checkIndex(periods, index); err != nil {
		return domain.ScheduleEdit{}, err
	}
	return newScheduleEdit(e.manager.InsertBetween(periods, index)), nil
}

func (e *pricingEditor) SetField(periods []domain.PricePeriod, index int, field domain.PriceField, value string) (domain.ScheduleEdit, error) {
	if !field.Valid() {
		return domain.ScheduleEdit{}, domain.ErrInvalidField
	}
	if err := checkIndex(periods, index); err != nil {
		return domain.ScheduleEdit{}, err
	}
	out, err := e.manager.SetField(periods, index, field, value)
	if err != nil {
		return domain.ScheduleEdit{}, err
	}
	return newScheduleEdit(out), nil
}

// Remove refuses to delete the only remaining period; a listed game always has a price.
func (e *pricingEditor) Remove(periods []domain.PricePeriod, index int) (domain.ScheduleEdit, error) {
	if err := checkIndex(periods, index); err != nil {
		return domain.ScheduleEdit{}, err
	}
	if len(periods) == 1 {
		return domain.ScheduleEdit{}, domain.ErrLastPricePeriod
	}
	return newScheduleEdit(e.manager.Remove(periods, index)), nil
}

func (e *pricingEditor) Validate(periods []domain.PricePeriod) domain.ValidationResult {
	return pricing.Validate(periods)
}

func newScheduleEdit(periods []domain.PricePeriod) domain.ScheduleEdit {
	return domain.ScheduleEdit{Periods: periods, Validation: pricing.Validate(periods)}
}

func checkIndex(periods []domain.PricePeriod, index int) error {
	if index < 0 || index >= len(periods) {
		return domain.ErrPeriodIndexOutOfRange
	}
	return nil
}
