package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{
  "initialAmount": "100",
  "planned": [
    {"id": "p1", "description": "Pocket money", "amount": "10", "kind": "income", "date": "2024-01-01T00:00:00Z", "isRecurring": true, "periodicity": "daily"}
  ],
  "actual": [
    {"id": "a1", "description": "Lunch", "amount": "12.50", "kind": "expense", "date": "2024-01-02T12:00:00Z", "isRecurring": false}
  ]
}`

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))

	out := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--file", path))

	err := cmd.Execute()

	return out.String(), err
}

func TestSeriesCmd(t *testing.T) {
	out, err := execCmd(t, "series", "--start", "2024-01-01", "--end", "2024-01-03")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,planned_income,planned_expense,actual_income,actual_expense,planned_balance,actual_balance", lines[0])
	assert.Equal(t, "2024-01-01,10.00,0.00,0.00,0.00,110.00,100.00", lines[1])
	assert.Equal(t, "2024-01-03,10.00,0.00,0.00,0.00,130.00,87.50", lines[3])
}

func TestProjectCmd(t *testing.T) {
	out, err := execCmd(t, "project", "--as-of", "2024-01-31")
	require.NoError(t, err)

	assert.Contains(t, out, "Summary as of 2024-01-31")
	assert.Contains(t, out, "Actual expense")
}

func TestCmd_Errors(t *testing.T) {
	type testCase struct {
		name string
		args []string
	}

	tests := []testCase{
		{name: "BadDate", args: []string{"project", "--as-of", "31/01/2024"}},
		{name: "MissingEnd", args: []string{"series", "--start", "2024-01-01"}},
		{name: "BadEnd", args: []string{"series", "--start", "2024-01-03", "--end", "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execCmd(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
