package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService(time.UTC)

	assert.Equal(t, []importer.Bank{importer.BankCGD}, svc.Banks())

	entries, err := svc.Import(importer.BankCGD, strings.NewReader("Data mov.;Descrição;Montante\n02-03-2026;Padaria;-4,20\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, budget.KindExpense, entries[0].Kind)
	assert.Equal(t, "4.20", entries[0].Amount)

	_, err = svc.Import("millennium", strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrUnknownBank)
}
