package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store persists one snapshot per user. Read returns a nil snapshot and no error
// when nothing has been stored for the user yet.
//
//go:generate mockgen -source=service.go -destination=store_mock.go -package=budget
type Store interface {
	Read(ctx context.Context, userID string) (*Snapshot, error)
	Write(ctx context.Context, userID string, snapshot *Snapshot) error
}

type Service struct {
	store         Store
	loc           *time.Location
	maxSeriesDays int
}

// NewService builds a Service. Entry dates are read as calendar days in loc.
// Series requests longer than maxSeriesDays are refused; zero disables the limit.
func NewService(store Store, loc *time.Location, maxSeriesDays int) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		store:         store,
		loc:           loc,
		maxSeriesDays: maxSeriesDays,
	}
}

// Location is the time zone calendar days are evaluated in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Snapshot returns the user's stored data. It never fails: a missing snapshot or a
// store error yields the empty default, and the error is logged.
func (s *Service) Snapshot(ctx context.Context, userID string) *Snapshot {
	snap, err := s.store.Read(ctx, userID)
	if err != nil {
		slog.Error("failed to read budget snapshot", "user", userID, "error", err)
		return NewSnapshot()
	}

	if snap == nil {
		return NewSnapshot()
	}

	if snap.InitialAmount == "" {
		snap.InitialAmount = "0"
	}

	if snap.Planned == nil {
		snap.Planned = []Entry{}
	}

	if snap.Actual == nil {
		snap.Actual = []Entry{}
	}

	return snap
}

// ReplaceSnapshot stores snap wholesale. Entries without an id get a fresh one.
func (s *Service) ReplaceSnapshot(ctx context.Context, userID string, snap *Snapshot) error {
	out := NewSnapshot()
	out.InitialAmount = snap.InitialAmount

	if err := validateInitialAmount(out.InitialAmount); err != nil {
		return err
	}

	for _, c := range []Collection{CollectionPlanned, CollectionActual} {
		entries, err := normalizeCollection(snap.Entries(c))
		if err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}

		out.setEntries(c, entries)
	}

	return s.write(ctx, userID, out)
}

// SetInitialAmount replaces the starting balance.
func (s *Service) SetInitialAmount(ctx context.Context, userID, amount string) error {
	if err := validateInitialAmount(amount); err != nil {
		return err
	}

	snap := s.Snapshot(ctx, userID)
	snap.InitialAmount = amount

	return s.write(ctx, userID, snap)
}

// ListEntries returns collection c filtered by f, newest first.
func (s *Service) ListEntries(ctx context.Context, userID string, c Collection, f ListFilter) ([]Entry, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}

	return Filter(s.localize(s.Snapshot(ctx, userID).Entries(c)), f), nil
}

// GetEntry looks up a single entry.
func (s *Service) GetEntry(ctx context.Context, userID string, c Collection, id string) (*Entry, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}

	e, ok := Find(s.Snapshot(ctx, userID).Entries(c), id)
	if !ok {
		return nil, ErrNotFound
	}

	return &e, nil
}

// AddEntry validates e and appends it to collection c under a fresh id.
func (s *Service) AddEntry(ctx context.Context, userID string, c Collection, e Entry) (*Entry, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	snap := s.Snapshot(ctx, userID)

	entries, created := Insert(snap.Entries(c), e)
	snap.setEntries(c, entries)

	if err := s.write(ctx, userID, snap); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateEntry replaces the entry with e.ID in collection c.
func (s *Service) UpdateEntry(ctx context.Context, userID string, c Collection, e Entry) (*Entry, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	snap := s.Snapshot(ctx, userID)

	entries, ok := Replace(snap.Entries(c), e)
	if !ok {
		return nil, ErrNotFound
	}

	snap.setEntries(c, entries)

	if err := s.write(ctx, userID, snap); err != nil {
		return nil, err
	}

	return &e, nil
}

// DeleteEntry removes the entry with id from collection c. Unknown ids are ignored.
func (s *Service) DeleteEntry(ctx context.Context, userID string, c Collection, id string) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}

	snap := s.Snapshot(ctx, userID)

	entries, ok := Remove(snap.Entries(c), id)
	if !ok {
		return nil
	}

	snap.setEntries(c, entries)

	return s.write(ctx, userID, snap)
}

// ImportActual appends already-parsed actual entries, each under a fresh id.
func (s *Service) ImportActual(ctx context.Context, userID string, imported []Entry) ([]Entry, error) {
	if len(imported) == 0 {
		return nil, nil
	}

	snap := s.Snapshot(ctx, userID)
	entries := snap.Actual
	created := make([]Entry, 0, len(imported))

	for i, e := range imported {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		var added Entry

		entries, added = Insert(entries, e)
		created = append(created, added)
	}

	snap.Actual = entries

	if err := s.write(ctx, userID, snap); err != nil {
		return nil, err
	}

	return created, nil
}

// Summary projects the planned collection as of asOf and totals the actual entries
// recorded up to that day.
func (s *Service) Summary(ctx context.Context, userID string, asOf time.Time) Summary {
	snap := s.Snapshot(ctx, userID)
	planned := s.localize(snap.Planned)
	actual := oneTime(s.localize(snap.Actual))

	return Summary{
		AsOf:           calendarDay(asOf),
		InitialAmount:  ParseInitialAmount(snap.InitialAmount),
		PlannedIncome:  ProjectedTotal(planned, KindIncome, asOf),
		PlannedExpense: ProjectedTotal(planned, KindExpense, asOf),
		PlannedBalance: ProjectedBalance(planned, snap.InitialAmount, asOf),
		ActualIncome:   ProjectedTotal(actual, KindIncome, asOf),
		ActualExpense:  ProjectedTotal(actual, KindExpense, asOf),
		ActualBalance:  ProjectedBalance(actual, snap.InitialAmount, asOf),
	}
}

// Series builds the day-by-day comparison for [start, end].
func (s *Service) Series(ctx context.Context, userID string, start, end time.Time) ([]DailyPoint, error) {
	if s.maxSeriesDays > 0 && DaysInRange(start, end) > s.maxSeriesDays {
		return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLarge, s.maxSeriesDays)
	}

	snap := s.Snapshot(ctx, userID)

	return BuildSeries(s.localize(snap.Planned), s.localize(snap.Actual), snap.InitialAmount, start, end), nil
}

func (s *Service) write(ctx context.Context, userID string, snap *Snapshot) error {
	if err := s.store.Write(ctx, userID, snap); err != nil {
		return fmt.Errorf("writing budget snapshot: %w", err)
	}

	return nil
}

// localize moves entry dates into the service location so calendar days match the user's.
func (s *Service) localize(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Date = e.Date.In(s.loc)
		out[i] = e
	}

	return out
}

func oneTime(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.IsRecurring = false
		e.Periodicity = ""
		out[i] = e
	}

	return out
}

func normalizeCollection(entries []Entry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		if e.ID == "" {
			out, e = Insert(out, e)
			seen[e.ID] = struct{}{}

			continue
		}

		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, e.ID)
		}

		seen[e.ID] = struct{}{}
		out = append(out, e)
	}

	return out, nil
}

func validateInitialAmount(amount string) error {
	if _, err := decimalFromString(amount); err != nil {
		return fmt.Errorf("%w: initial amount %q is not a number", ErrInvalidEntry, amount)
	}

	return nil
}
