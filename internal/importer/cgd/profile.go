package cgd

// dateLayout is the day-first format every CGD export uses.
const dateLayout = "02-01-2006"

type amountMode int

const (
	// amountSingle is one signed column, e.g. "Montante" = "-10,00".
	amountSingle amountMode = iota
	// amountSplit is a pair of unsigned "Débito"/"Crédito" columns.
	amountSplit
)

// Profile is the header layout of one CGD export flavour.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	if p.AmountMode == amountSplit {
		return append(cols, p.DebitCol, p.CreditCol)
	}

	return append(cols, p.AmountCol)
}

// profiles are tried in order; the card layout goes first since its date column
// name is the most generic.
var profiles = []Profile{
	{Name: "cartão", DateCol: "Data", DescCol: "Descrição", AmountMode: amountSplit, DebitCol: "Débito", CreditCol: "Crédito"},
	{Name: "extrato", DateCol: "Data mov.", DescCol: "Descrição", AmountMode: amountSingle, AmountCol: "Movimento"},
	{Name: "conta", DateCol: "Data mov.", DescCol: "Descrição", AmountMode: amountSingle, AmountCol: "Montante"},
}
