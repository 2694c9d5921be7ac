package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

func TestBudget_Window(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)

	customStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	customEnd := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		budget    domain.Budget
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "monthly covers the calendar month",
			budget:    domain.Budget{Period: domain.Monthly},
			wantStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "weekly starts on Monday",
			budget:    domain.Budget{Period: domain.Weekly},
			wantStart: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.March, 23, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "yearly covers the calendar year",
			budget:    domain.Budget{Period: domain.Yearly},
			wantStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "custom uses explicit dates",
			budget:    domain.Budget{Period: domain.Custom, StartDate: customStart, EndDate: &customEnd},
			wantStart: customStart,
			wantEnd:   customEnd,
		},
		{
			name:      "custom without end date runs up to now",
			budget:    domain.Budget{Period: domain.Custom, StartDate: customStart},
			wantStart: customStart,
			wantEnd:   now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			from, to := tc.budget.Window(now)
			assert.True(t, from.Equal(tc.wantStart), "start: got %s, want %s", from, tc.wantStart)
			assert.True(t, to.Equal(tc.wantEnd), "end: got %s, want %s", to, tc.wantEnd)
		})
	}
}

func TestBudget_WindowSundayWeekly(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, time.March, 22, 9, 0, 0, 0, time.UTC)
	b := domain.Budget{Period: domain.Weekly}

	from, to := b.Window(sunday)

	assert.Equal(t, time.Monday, from.Weekday())
	assert.True(t, from.Equal(time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, to.After(sunday))
}
