package budget

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Insert appends e to entries under a fresh id. The input slice is not modified.
func Insert(entries []Entry, e Entry) ([]Entry, Entry) {
	e.ID = uuid.NewString()

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)

	return out, e
}

// Replace swaps the entry sharing e's id for e, keeping its position.
// It reports false and returns entries unchanged when no entry has that id.
func Replace(entries []Entry, e Entry) ([]Entry, bool) {
	idx := slices.IndexFunc(entries, func(x Entry) bool { return x.ID == e.ID })
	if idx < 0 {
		return entries, false
	}

	out := slices.Clone(entries)
	out[idx] = e

	return out, true
}

// Remove drops the entry with the given id. Removing an unknown id is a no-op.
func Remove(entries []Entry, id string) ([]Entry, bool) {
	idx := slices.IndexFunc(entries, func(x Entry) bool { return x.ID == id })
	if idx < 0 {
		return entries, false
	}

	return slices.Delete(slices.Clone(entries), idx, idx+1), true
}

// Find returns the entry with the given id.
func Find(entries []Entry, id string) (Entry, bool) {
	idx := slices.IndexFunc(entries, func(x Entry) bool { return x.ID == id })
	if idx < 0 {
		return Entry{}, false
	}

	return entries[idx], true
}

// Validate checks the record invariants enforced on every write.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}

	amount, err := decimalFromString(e.Amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q is not a number", ErrInvalidEntry, e.Amount)
	}

	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidEntry)
	}

	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, e.Kind)
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}

	if e.IsRecurring && !e.Periodicity.Valid() {
		return fmt.Errorf("%w: recurring entry needs a periodicity, got %q", ErrInvalidEntry, e.Periodicity)
	}

	if !e.IsRecurring && e.Periodicity != "" {
		return fmt.Errorf("%w: periodicity set on a one-time entry", ErrInvalidEntry)
	}

	return nil
}

// ListFilter narrows a collection for display.
type ListFilter struct {
	Kind      *Kind
	StartDate *time.Time
	EndDate   *time.Time
}

// Filter returns the entries matching f, newest first. Dates compare by calendar day.
func Filter(entries []Entry, f ListFilter) []Entry {
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if f.Kind != nil && e.Kind != *f.Kind {
			continue
		}

		if f.StartDate != nil && daysBetween(*f.StartDate, e.Date) < 0 {
			continue
		}

		if f.EndDate != nil && daysBetween(e.Date, *f.EndDate) < 0 {
			continue
		}

		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.Date.Compare(a.Date)
	})

	return out
}
