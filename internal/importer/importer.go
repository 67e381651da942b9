package importer

import (
	"io"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Importer turns a bank export into actual budget entries. Returned entries carry
// no id; the budget service assigns one when they are stored.
type Importer interface {
	Parse(r io.Reader) ([]budget.Entry, error)
}
