package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookLayout(t *testing.T) {
	created := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	data, err := Workbook([]Row{
		{ID: "id-1", BusinessName: "Acme Retail", ContactName: "Jordan", ContactEmail: "jordan@acme.example", SelectedPlan: "Professional", Onboarded: true, CreatedAt: created},
		{ID: "id-2", BusinessName: "Beta Co", ContactName: "Sam", ContactEmail: "sam@beta.example", SelectedPlan: "Starter", CreatedAt: created},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "Acme Retail", rows[1][1])
	assert.Equal(t, "Yes", rows[1][5])
	assert.Equal(t, "No", rows[2][5])
	assert.Equal(t, "2026-08-30 14:30", rows[1][6])
}

func TestWorkbookEmpty(t *testing.T) {
	data, err := Workbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, headers, rows[0])
}
