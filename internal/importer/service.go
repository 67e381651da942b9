package importer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer/cgd"
)

var ErrUnknownBank = errors.New("unknown bank")

type Service struct {
	importers map[Bank]Importer
}

// NewService registers the supported bank formats. Row dates are read in loc.
func NewService(loc *time.Location) *Service {
	return &Service{
		importers: map[Bank]Importer{
			BankCGD: cgd.NewParser(loc),
		},
	}
}

// Banks lists the supported bank identifiers in a stable order.
func (s *Service) Banks() []Bank {
	banks := make([]Bank, 0, len(s.importers))
	for b := range s.importers {
		banks = append(banks, b)
	}

	slices.Sort(banks)

	return banks
}

func (s *Service) Import(bank Bank, r io.Reader) ([]budget.Entry, error) {
	importer, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	return importer.Parse(r)
}
