package extraction

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deckHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`

// postColumn renders one accepted post as two stacked shapes at the given
// horizontal anchor.
func postColumn(x int64, title string) string {
	shape := func(y int64, text string) string {
		return fmt.Sprintf(`<p:sp><p:spPr><a:xfrm><a:off x="%d" y="%d"/></a:xfrm></p:spPr><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, x, y, text)
	}
	return shape(50, title) + shape(150, "Reach: 1,000")
}

// writeTestDeck writes a .pptx with one slide per element of slides, each
// element being the inner spTree XML.
func writeTestDeck(t *testing.T, name string, slides ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for i, inner := range slides {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		require.NoError(t, err)
		_, err = w.Write([]byte(deckHeader + `<p:cSld><p:spTree>` + inner + `</p:spTree></p:cSld></p:sld>`))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func TestBatchRun_GlobalRenumbering(t *testing.T) {
	// File A: 3 posts on one slide. File B: 2 + 3 posts on two slides.
	fileA := writeTestDeck(t, "a.pptx",
		postColumn(0, "[01/02] A one")+postColumn(5000, "[02/02] A two")+postColumn(10000, "[03/02] A three"),
	)
	fileB := writeTestDeck(t, "b.pptx",
		postColumn(0, "[04/02] B one")+postColumn(5000, "[05/02] B two"),
		postColumn(0, "[06/02] B three")+postColumn(5000, "[07/02] B four")+postColumn(10000, "[08/02] B five"),
	)

	batch := NewBatch(NewProcessor(nil, Config{}), nil)
	result, err := batch.Run(context.Background(), []string{fileA, fileB})
	require.NoError(t, err)
	require.Len(t, result.Records, 8)
	assert.Empty(t, result.Failures)

	for i, record := range result.Records {
		assert.Equal(t, i+1, record.PostIndex, "post_index must be 1..8 in batch order")
	}
	for _, record := range result.Records[:3] {
		assert.Equal(t, "a.pptx", record.SourceFile)
	}
	for _, record := range result.Records[3:] {
		assert.Equal(t, "b.pptx", record.SourceFile)
	}

	// File-then-slide-then-column order.
	assert.Equal(t, "[01/02] A one", result.Records[0].Title)
	assert.Equal(t, "[04/02] B one", result.Records[3].Title)
	assert.Equal(t, "[06/02] B three", result.Records[5].Title)
}

func TestBatchRun_FileFailureDoesNotStopBatch(t *testing.T) {
	good := writeTestDeck(t, "good.pptx", postColumn(0, "[01/02] Kept post"))

	corrupt := filepath.Join(t.TempDir(), "corrupt.pptx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip archive"), 0644))

	batch := NewBatch(NewProcessor(nil, Config{}), nil)
	result, err := batch.Run(context.Background(), []string{corrupt, good})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, corrupt, result.Failures[0].File)
	assert.NotEmpty(t, result.Failures[0].Error)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "[01/02] Kept post", result.Records[0].Title)
	assert.Equal(t, 1, result.Records[0].PostIndex)
}

func TestBatchRun_NoUsableData(t *testing.T) {
	empty := writeTestDeck(t, "empty.pptx",
		`<p:sp><p:spPr><a:xfrm><a:off x="0" y="0"/></a:xfrm></p:spPr><p:txBody><a:p><a:r><a:t>PERFORMANCE REPORT FEBRUARY</a:t></a:r></a:p></p:txBody></p:sp>`,
	)

	batch := NewBatch(NewProcessor(nil, Config{}), nil)
	result, err := batch.Run(context.Background(), []string{empty})

	assert.ErrorIs(t, err, ErrNoUsableData)
	require.NotNil(t, result)
	assert.Empty(t, result.Records)
}

func TestBatchRun_ParallelMatchesSequential(t *testing.T) {
	files := []string{
		writeTestDeck(t, "a.pptx", postColumn(0, "[01/02] First")),
		writeTestDeck(t, "b.pptx", postColumn(0, "[02/02] Second")+postColumn(5000, "[03/02] Third")),
		writeTestDeck(t, "c.pptx", postColumn(0, "[04/02] Fourth")),
	}

	sequential := NewBatch(NewProcessor(nil, Config{}), nil)
	wantResult, err := sequential.Run(context.Background(), files)
	require.NoError(t, err)

	parallel := NewBatch(NewProcessor(nil, Config{}), nil)
	parallel.Workers = 3
	gotResult, err := parallel.Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, wantResult.Records, gotResult.Records)
}

func TestBatchRun_ProgressCallback(t *testing.T) {
	files := []string{
		writeTestDeck(t, "a.pptx", postColumn(0, "[01/02] First")),
		writeTestDeck(t, "b.pptx", postColumn(0, "[02/02] Second")),
	}

	var mu sync.Mutex
	var seen []Progress

	batch := NewBatch(NewProcessor(nil, Config{}), nil)
	batch.OnProgress = func(p Progress) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	}

	_, err := batch.Run(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	sort.Slice(seen, func(i, j int) bool { return seen[i].Index < seen[j].Index })
	assert.Equal(t, 1, seen[0].Index)
	assert.Equal(t, 2, seen[0].Total)
	assert.Equal(t, 1, seen[0].Records)
	assert.NoError(t, seen[0].Err)
}

func TestBatchRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := NewBatch(NewProcessor(nil, Config{}), nil)
	_, err := batch.Run(ctx, []string{"whatever.pptx"})
	assert.ErrorIs(t, err, context.Canceled)
}
