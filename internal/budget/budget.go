package budget

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("entry not found")
	ErrInvalidEntry      = errors.New("invalid entry")
	ErrRangeTooLarge     = errors.New("date range too large")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Kind tells whether an entry adds to or subtracts from the balance.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Periodicity is the cadence of a recurring entry.
type Periodicity string

const (
	PeriodicityDaily   Periodicity = "daily"
	PeriodicityWeekly  Periodicity = "weekly"
	PeriodicityMonthly Periodicity = "monthly"
	PeriodicityYearly  Periodicity = "yearly"
)

func (p Periodicity) Valid() bool {
	switch p {
	case PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly, PeriodicityYearly:
		return true
	}

	return false
}

// Collection names one of the two entry lists of a snapshot.
type Collection string

const (
	CollectionPlanned Collection = "planned"
	CollectionActual  Collection = "actual"
)

func (c Collection) Valid() bool {
	return c == CollectionPlanned || c == CollectionActual
}

// Entry is a single planned or actual income/expense record.
// Amount is kept as the decimal string the user entered; the sign lives in Kind.
type Entry struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      string      `json:"amount"`
	Kind        Kind        `json:"kind"`
	Date        time.Time   `json:"date"`
	IsRecurring bool        `json:"isRecurring"`
	Periodicity Periodicity `json:"periodicity,omitempty"`
}

// Snapshot is everything stored for one user.
type Snapshot struct {
	InitialAmount string  `json:"initialAmount"`
	Planned       []Entry `json:"planned"`
	Actual        []Entry `json:"actual"`
}

// NewSnapshot returns the default snapshot handed out for users with no stored data.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		InitialAmount: "0",
		Planned:       []Entry{},
		Actual:        []Entry{},
	}
}

// MarshalJSON writes empty collections as [] and a blank initial amount as "0".
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot

	out := plain(s)
	if out.InitialAmount == "" {
		out.InitialAmount = "0"
	}

	if out.Planned == nil {
		out.Planned = []Entry{}
	}

	if out.Actual == nil {
		out.Actual = []Entry{}
	}

	return json.Marshal(out)
}

// Entries returns the collection c of the snapshot.
func (s *Snapshot) Entries(c Collection) []Entry {
	if c == CollectionActual {
		return s.Actual
	}

	return s.Planned
}

func (s *Snapshot) setEntries(c Collection, entries []Entry) {
	if c == CollectionActual {
		s.Actual = entries
		return
	}

	s.Planned = entries
}

// DailyPoint is one day of the planned-vs-actual comparison series.
type DailyPoint struct {
	Date           time.Time
	PlannedIncome  decimal.Decimal
	PlannedExpense decimal.Decimal
	ActualIncome   decimal.Decimal
	ActualExpense  decimal.Decimal
	PlannedBalance decimal.Decimal
	ActualBalance  decimal.Decimal
}

// Summary holds the projected totals as of a single day.
type Summary struct {
	AsOf           time.Time
	InitialAmount  decimal.Decimal
	PlannedIncome  decimal.Decimal
	PlannedExpense decimal.Decimal
	PlannedBalance decimal.Decimal
	ActualIncome   decimal.Decimal
	ActualExpense  decimal.Decimal
	ActualBalance  decimal.Decimal
}
