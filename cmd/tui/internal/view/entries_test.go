package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

func TestEntryForm_RoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	original := budget.Entry{
		ID:          "abc",
		Description: "Gym",
		Amount:      "30",
		Kind:        budget.KindExpense,
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
		IsRecurring: true,
		Periodicity: budget.PeriodicityMonthly,
	}

	f := newEntryForm(&original, loc)
	assert.Equal(t, "2024-05-01", f.date)

	got, err := f.entry(loc)
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.True(t, original.Date.Equal(got.Date))
	assert.Equal(t, budget.PeriodicityMonthly, got.Periodicity)

	f.recurring = false

	got, err = f.entry(loc)
	require.NoError(t, err)
	assert.Empty(t, got.Periodicity, "one-time entries drop the periodicity picked earlier")
}

func TestEntryForm_Invalid(t *testing.T) {
	f := newEntryForm(nil, time.UTC)
	f.description = "Coffee"
	f.amount = "-2"

	_, err := f.entry(time.UTC)
	assert.ErrorIs(t, err, budget.ErrInvalidEntry)

	f.amount = "2"
	f.date = "tomorrow"

	_, err = f.entry(time.UTC)
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateAmount("12.50"))
	assert.NoError(t, validateAmount("0"))
	assert.Error(t, validateAmount("-1"))
	assert.Error(t, validateAmount("ten"))

	assert.NoError(t, validateDate("2024-02-29"))
	assert.Error(t, validateDate("2023-02-29"))
}
