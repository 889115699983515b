package pricing

import (
	"testing"
	"time"

	"zone37/internal/clock"
	"zone37/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(d int) *time.Time {
	t := day(d)
	return &t
}

func newTestManager() *Manager {
	return NewManager(clock.NewFixed(testNow))
}

func TestManager_Append(t *testing.T) {
	m := newTestManager()

	t.Run("empty schedule gets default tier starting now", func(t *testing.T) {
		got := m.Append(nil)
		require.Len(t, got, 1)
		assert.Equal(t, testNow, got[0].Starts)
		assert.Nil(t, got[0].Ends)
		assert.Equal(t, DefaultPrice, got[0].Price)
	})

	t.Run("open-ended last tier is closed a week after its start", func(t *testing.T) {
		in := []domain.PricePeriod{{Starts: day(1), Price: 20}}
		got := m.Append(in)
		require.Len(t, got, 2)
		want := day(1).Add(7 * 24 * time.Hour)
		require.NotNil(t, got[0].Ends)
		assert.Equal(t, want, *got[0].Ends)
		assert.Equal(t, want, got[1].Starts)
		assert.Nil(t, got[1].Ends)
		assert.Equal(t, 25, got[1].Price)
		assert.Nil(t, in[0].Ends, "input must not be modified")
	})

	t.Run("closed last tier is continued at its end", func(t *testing.T) {
		in := []domain.PricePeriod{{Starts: day(1), Ends: dayPtr(10), Price: 30}}
		got := m.Append(in)
		require.Len(t, got, 2)
		assert.Equal(t, day(10), *got[0].Ends)
		assert.Equal(t, day(10), got[1].Starts)
		assert.Equal(t, 35, got[1].Price)
	})

	t.Run("valid schedules stay valid", func(t *testing.T) {
		schedules := [][]domain.PricePeriod{
			nil,
			{{Starts: day(1), Price: 0}},
			{{Starts: day(1), Ends: dayPtr(5), Price: 10}, {Starts: day(5), Price: 15}},
			{{Starts: day(1), Ends: dayPtr(5), Price: 10}, {Starts: day(8), Ends: dayPtr(12), Price: 15}},
		}
		for _, s := range schedules {
			require.True(t, Validate(s).Valid, "precondition")
			got := m.Append(s)
			assert.Len(t, got, len(s)+1)
			assert.True(t, Validate(got).Valid)
		}
	})
}

func TestManager_InsertBetween(t *testing.T) {
	m := newTestManager()

	t.Run("before first tier starts halfway from now", func(t *testing.T) {
		in := []domain.PricePeriod{{Starts: day(11), Price: 30}}
		got := m.InsertBetween(in, 0)
		require.Len(t, got, 2)
		wantStart := testNow.Add(day(11).Sub(testNow) / 2)
		assert.Equal(t, wantStart, got[0].Starts)
		require.NotNil(t, got[0].Ends)
		assert.Equal(t, day(11), *got[0].Ends)
		assert.Equal(t, 25, got[0].Price)
		assert.Equal(t, in[0], got[1])
		assert.True(t, Validate(got).Valid)
	})

	t.Run("between tiers splits the gap and shortens the previous tier", func(t *testing.T) {
		in := []domain.PricePeriod{
			{Starts: day(1), Ends: dayPtr(10), Price: 10},
			{Starts: day(20), Price: 15},
		}
		got := m.InsertBetween(in, 1)
		require.Len(t, got, 3)
		assert.Equal(t, day(15), got[1].Starts)
		assert.Equal(t, day(20), *got[1].Ends)
		assert.Equal(t, 13, got[1].Price, "12.5 rounds up")
		assert.Equal(t, day(15), *got[0].Ends)
		assert.Equal(t, day(20), got[2].Starts)
		assert.Equal(t, day(10), *in[0].Ends, "input must not be modified")
		assert.True(t, Validate(got).Valid)
	})

	t.Run("previous tier without end anchors on its start", func(t *testing.T) {
		in := []domain.PricePeriod{
			{Starts: day(1), Price: 10},
			{Starts: day(21), Price: 20},
		}
		got := m.InsertBetween(in, 1)
		require.Len(t, got, 3)
		assert.Equal(t, day(11), got[1].Starts)
		assert.Equal(t, day(11), *got[0].Ends)
		assert.Equal(t, 15, got[1].Price)
	})

	t.Run("first tier centuries away", func(t *testing.T) {
		far := time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC)
		got := m.InsertBetween([]domain.PricePeriod{{Starts: far, Price: 30}}, 0)
		require.Len(t, got, 2)
		assert.Equal(t, 2262, got[0].Starts.Year())
		before, after := got[0].Starts.Sub(testNow), far.Sub(got[0].Starts)
		assert.LessOrEqual(t, (before - after).Abs(), time.Second)
		assert.Equal(t, far, *got[0].Ends)
		assert.True(t, Validate(got).Valid)
	})

	t.Run("tiers separated by gaps stay valid", func(t *testing.T) {
		in := []domain.PricePeriod{
			{Starts: day(2), Ends: dayPtr(4), Price: 10},
			{Starts: day(6), Ends: dayPtr(8), Price: 20},
			{Starts: day(10), Price: 30},
		}
		for idx := range in {
			got := m.InsertBetween(in, idx)
			assert.Len(t, got, len(in)+1)
			assert.True(t, Validate(got).Valid, "index %d: %+v", idx, Validate(got))
		}
	})

	t.Run("back-to-back tiers produce an empty tier that validation flags", func(t *testing.T) {
		in := []domain.PricePeriod{
			{Starts: day(2), Ends: dayPtr(6), Price: 10},
			{Starts: day(6), Price: 20},
		}
		got := m.InsertBetween(in, 1)
		require.Len(t, got, 3)
		assert.Equal(t, day(6), got[1].Starts)
		assert.Equal(t, day(6), *got[1].Ends)
		assert.Equal(t, domain.ValidationResult{
			Reason:      "Period 2: start date must be earlier than end date",
			PeriodIndex: 2,
		}, Validate(got))
	})

	t.Run("out of range index leaves schedule unchanged", func(t *testing.T) {
		in := []domain.PricePeriod{{Starts: day(2), Price: 10}}
		assert.Equal(t, in, m.InsertBetween(in, 1))
		assert.Equal(t, in, m.InsertBetween(in, -1))
		assert.Empty(t, m.InsertBetween(nil, 0))
	})
}

func TestManager_SetField(t *testing.T) {
	m := newTestManager()
	base := []domain.PricePeriod{
		{Starts: day(1), Ends: dayPtr(10), Price: 10},
		{Starts: day(10), Ends: dayPtr(20), Price: 15},
	}

	t.Run("starts on second tier moves previous end", func(t *testing.T) {
		got, err := m.SetField(base, 1, domain.FieldStarts, "2024-01-08T00:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, day(8), *got[0].Ends)
		assert.Equal(t, day(8), got[1].Starts)
		assert.Equal(t, day(10), *base[0].Ends, "input must not be modified")
	})

	t.Run("starts on first tier links nothing", func(t *testing.T) {
		got := m.SetStarts(base, 0, day(2))
		assert.Equal(t, day(2), got[0].Starts)
		assert.Equal(t, base[1], got[1])
	})

	t.Run("ends on first tier moves next start", func(t *testing.T) {
		got, err := m.SetField(base, 0, domain.FieldEnds, "2024-01-12")
		require.NoError(t, err)
		assert.Equal(t, day(12), *got[0].Ends)
		assert.Equal(t, day(12), got[1].Starts)
	})

	t.Run("ends on last tier links nothing", func(t *testing.T) {
		got := m.SetEnds(base, 1, dayPtr(25))
		assert.Equal(t, day(25), *got[1].Ends)
		assert.Equal(t, base[0], got[0])
	})

	t.Run("empty ends makes the tier open-ended", func(t *testing.T) {
		got, err := m.SetField(base, 1, domain.FieldEnds, "")
		require.NoError(t, err)
		assert.Nil(t, got[1].Ends)
		assert.Equal(t, day(10), got[1].Starts)
	})

	t.Run("price does not link", func(t *testing.T) {
		got, err := m.SetField(base, 1, domain.FieldPrice, "42")
		require.NoError(t, err)
		assert.Equal(t, 42, got[1].Price)
		assert.Equal(t, base[0], got[0])
	})

	t.Run("price coercion", func(t *testing.T) {
		cases := map[string]int{"": 0, "abc": 0, " 12 ": 12, "12.6": 13, "-3": -3, "NaN": 0}
		for raw, want := range cases {
			got, err := m.SetField(base, 0, domain.FieldPrice, raw)
			require.NoError(t, err)
			assert.Equal(t, want, got[0].Price, "input %q", raw)
		}
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		_, err := m.SetField(base, 0, domain.FieldStarts, "next tuesday")
		require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
		_, err = m.SetField(base, 0, domain.FieldStarts, "")
		require.ErrorIs(t, err, domain.ErrInvalidTimestamp)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := m.SetField(base, 0, domain.PriceField("currency"), "EUR")
		require.ErrorIs(t, err, domain.ErrInvalidField)
	})
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager()
	a := domain.PricePeriod{Starts: day(1), Ends: dayPtr(5), Price: 10}
	b := domain.PricePeriod{Starts: day(5), Ends: dayPtr(9), Price: 15}
	c := domain.PricePeriod{Starts: day(9), Price: 20}
	in := []domain.PricePeriod{a, b, c}

	t.Run("interior tier relinks neighbours", func(t *testing.T) {
		got := m.Remove(in, 1)
		require.Len(t, got, 2)
		assert.Equal(t, day(9), *got[0].Ends)
		assert.Equal(t, c, got[1])
		assert.Equal(t, day(5), *in[0].Ends, "input must not be modified")
		assert.Len(t, in, 3)
	})

	t.Run("first tier leaves the rest as is", func(t *testing.T) {
		got := m.Remove(in, 0)
		assert.Equal(t, []domain.PricePeriod{b, c}, got)
	})

	t.Run("last tier leaves the rest as is", func(t *testing.T) {
		got := m.Remove(in, 2)
		assert.Equal(t, []domain.PricePeriod{a, b}, got)
	})

	t.Run("down to zero is allowed", func(t *testing.T) {
		got := m.Remove([]domain.PricePeriod{c}, 0)
		assert.Empty(t, got)
		assert.True(t, Validate(got).Valid)
	})
}

func TestManager_EndToEnd(t *testing.T) {
	m := newTestManager()

	s := m.Append(nil)
	require.Equal(t, []domain.PricePeriod{{Starts: testNow, Price: 20}}, s)

	s = m.Append(s)
	week := testNow.Add(7 * 24 * time.Hour)
	require.Len(t, s, 2)
	assert.Equal(t, week, *s[0].Ends)
	assert.Equal(t, domain.PricePeriod{Starts: week, Price: 25}, s[1])
	assert.Equal(t, domain.ValidationResult{Valid: true}, Validate(s))

	s, err := m.SetField(s, 1, domain.FieldPrice, "-1")
	require.NoError(t, err)
	got := Validate(s)
	assert.False(t, got.Valid)
	assert.Equal(t, "Price cannot be negative", got.Reason)
	assert.Equal(t, 2, got.PeriodIndex)
}
