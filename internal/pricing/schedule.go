// Package pricing maintains a game's dynamic pricing schedule: an ordered list of
// time-bounded price tiers that the admin console edits one field or tier at a time.
//
// Every operation takes a schedule and returns a new one. Inputs are never modified, so
// the caller's previous snapshot stays intact. Mutations always succeed structurally;
// whether the result is consistent is answered only by Validate.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"zone37/internal/clock"
	"zone37/internal/domain"
)

// Defaults used when the manager creates tiers.
const (
	DefaultPrice = 20
	PriceStep    = 5
	DefaultSpan  = 7 * 24 * time.Hour
)

// timestampLayouts are accepted for starts/ends form input, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Manager applies schedule edits. It reads "now" from its clock when a new tier has no
// neighbour to anchor to.
type Manager struct {
	clock clock.Clock
}

// NewManager returns a Manager using c as its source of the current time.
func NewManager(c clock.Clock) *Manager {
	if c == nil {
		c = clock.NewSystem()
	}
	return &Manager{clock: c}
}

// SetStarts sets the start of periods[index]. A non-first period drags the previous
// period's end along so the two stay back-to-back.
func (m *Manager) SetStarts(periods []domain.PricePeriod, index int, starts time.Time) []domain.PricePeriod {
	out := clone(periods)
	if !inRange(out, index) {
		return out
	}
	out[index].Starts = starts
	if index > 0 {
		out[index-1].Ends = timePtr(starts)
	}
	return out
}

// SetEnds sets the end of periods[index]; nil makes the period open-ended. A non-last
// period pushes the same instant into the next period's start.
func (m *Manager) SetEnds(periods []domain.PricePeriod, index int, ends *time.Time) []domain.PricePeriod {
	out := clone(periods)
	if !inRange(out, index) {
		return out
	}
	if ends == nil {
		out[index].Ends = nil
		return out
	}
	out[index].Ends = timePtr(*ends)
	if index < len(out)-1 {
		out[index+1].Starts = *ends
	}
	return out
}

// SetPrice sets the price of periods[index]. Neighbours are untouched.
func (m *Manager) SetPrice(periods []domain.PricePeriod, index int, price int) []domain.PricePeriod {
	out := clone(periods)
	if !inRange(out, index) {
		return out
	}
	out[index].Price = price
	return out
}

// SetField applies a raw form value to one field of periods[index].
// Price input that is empty or not a number counts as 0. An empty ends clears it.
// Unlike the other edits, SetField can fail: a value that is not a timestamp yields
// domain.ErrInvalidTimestamp and an unknown field domain.ErrInvalidField, and the input
// schedule is left as it was. Callers holding parsed values use SetStarts, SetEnds and
// SetPrice, which never fail.
func (m *Manager) SetField(periods []domain.PricePeriod, index int, field domain.PriceField, value string) ([]domain.PricePeriod, error) {
	switch field {
	case domain.FieldPrice:
		return m.SetPrice(periods, index, coercePrice(value)), nil
	case domain.FieldStarts:
		t, err := ParseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return m.SetStarts(periods, index, t), nil
	case domain.FieldEnds:
		if strings.TrimSpace(value) == "" {
			return m.SetEnds(periods, index, nil), nil
		}
		t, err := ParseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return m.SetEnds(periods, index, &t), nil
	default:
		return nil, domain.ErrInvalidField
	}
}

// Append adds a tier after the last one. An open-ended last tier is closed a week after
// its start and the new tier begins there; otherwise the new tier begins at the last
// tier's end. Each appended tier costs PriceStep more than its predecessor.
func (m *Manager) Append(periods []domain.PricePeriod) []domain.PricePeriod {
	out := clone(periods)
	if len(out) == 0 {
		return append(out, domain.PricePeriod{Starts: m.clock.Now(), Price: DefaultPrice})
	}
	last := &out[len(out)-1]
	var starts time.Time
	if last.Ends != nil {
		starts = *last.Ends
	} else {
		starts = last.Starts.Add(DefaultSpan)
		last.Ends = timePtr(starts)
	}
	next := domain.PricePeriod{Starts: starts, Price: last.Price + PriceStep}
	return append(out, next)
}

// InsertBetween inserts a tier before periods[index], starting halfway through the gap
// it fills and ending where periods[index] starts. Before the first tier the gap runs
// from now; elsewhere it runs from the previous tier's end (or start, if it has none),
// and the previous tier is shortened to meet the new one.
//
// The neighbours are assumed to be consistent already; an overlapping schedule yields a
// nonsensical midpoint without complaint.
func (m *Manager) InsertBetween(periods []domain.PricePeriod, index int) []domain.PricePeriod {
	out := clone(periods)
	if !inRange(out, index) {
		return out
	}
	curr := out[index]
	if index == 0 {
		first := domain.PricePeriod{
			Starts: midpoint(m.clock.Now(), curr.Starts),
			Ends:   timePtr(curr.Starts),
			Price:  curr.Price - PriceStep,
		}
		return append([]domain.PricePeriod{first}, out...)
	}

	prev := out[index-1]
	prevEnd := prev.Starts
	if prev.Ends != nil {
		prevEnd = *prev.Ends
	}
	inserted := domain.PricePeriod{
		Starts: midpoint(prevEnd, curr.Starts),
		Ends:   timePtr(curr.Starts),
		Price:  averagePrice(prev.Price, curr.Price),
	}
	out[index-1].Ends = timePtr(inserted.Starts)

	result := make([]domain.PricePeriod, 0, len(out)+1)
	result = append(result, out[:index]...)
	result = append(result, inserted)
	return append(result, out[index:]...)
}

// Remove deletes periods[index]. Removing an interior tier stretches its predecessor to
// the successor's start; removing the first or last tier leaves the neighbour as is.
func (m *Manager) Remove(periods []domain.PricePeriod, index int) []domain.PricePeriod {
	out := clone(periods)
	if !inRange(out, index) {
		return out
	}
	if index > 0 && index < len(out)-1 {
		out[index-1].Ends = timePtr(out[index+1].Starts)
	}
	return append(out[:index], out[index+1:]...)
}

// ParseTimestamp parses form input for a tier bound and normalizes it to UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &timestampError{value: value}
}

type timestampError struct {
	value string
}

func (e *timestampError) Error() string {
	return domain.ErrInvalidTimestamp.Error() + ": " + strconv.Quote(e.value)
}

func (e *timestampError) Unwrap() error {
	return domain.ErrInvalidTimestamp
}

func coercePrice(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}

// averagePrice rounds halves up, so 15 and 20 average to 18.
func averagePrice(a, b int) int {
	return int(math.Floor(float64(a+b)/2 + 0.5))
}

// midpoint returns the instant halfway between from and to. Spans beyond what a
// time.Duration holds (about 292 years) are halved in seconds instead.
func midpoint(from, to time.Time) time.Time {
	if d := to.Sub(from); d != maxDuration && d != minDuration {
		return from.Add(d / 2)
	}
	secs := to.Unix() - from.Unix()
	nanos := int64(to.Nanosecond()) - int64(from.Nanosecond())
	half := nanos/2 + (secs%2)*int64(time.Second)/2
	return time.Unix(from.Unix()+secs/2, int64(from.Nanosecond())+half).In(from.Location())
}

const (
	maxDuration = time.Duration(math.MaxInt64)
	minDuration = time.Duration(math.MinInt64)
)

func inRange(periods []domain.PricePeriod, index int) bool {
	return index >= 0 && index < len(periods)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// clone deep-copies periods, including the Ends pointers.
func clone(periods []domain.PricePeriod) []domain.PricePeriod {
	out := make([]domain.PricePeriod, len(periods))
	for i, p := range periods {
		out[i] = p
		if p.Ends != nil {
			out[i].Ends = timePtr(*p.Ends)
		}
	}
	return out
}
