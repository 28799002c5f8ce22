package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "posts.xlsx")
	w := NewExcelWriter(nil)

	require.NoError(t, w.WriteWorkbook(path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{postsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(postsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, postHeaders[:len(rows[0])], rows[0])

	assert.Equal(t, "FB Wallpost [01/02]", rows[1][3])
	assert.Equal(t, "5000", rows[1][6])
	assert.Equal(t, "post", rows[1][4])

	// Second record has no metrics; the reach cell must be empty.
	if len(rows[2]) > 6 {
		assert.Empty(t, rows[2][6])
	}

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, "Total posts", summary[0][0])
	assert.Equal(t, "2", summary[0][1])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.xlsx")
	w := NewExcelWriter(nil)

	require.NoError(t, w.WriteWorkbook(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(postsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
