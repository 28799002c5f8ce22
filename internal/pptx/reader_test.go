package pptx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidepulse/pkg/contracts/domain"
)

// writeDeck creates a minimal .pptx package whose ppt/slides entries hold
// the given XML bodies, in order.
func writeDeck(t *testing.T, slides ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	names := []string{"slide1.xml", "slide2.xml", "slide10.xml"}
	for i, body := range slides {
		w, err := zw.Create("ppt/slides/" + names[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

const slideHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`

func textShape(x, y int64, text string) string {
	return `<p:sp><p:spPr><a:xfrm><a:off x="` + strconv.FormatInt(x, 10) + `" y="` + strconv.FormatInt(y, 10) + `"/></a:xfrm></p:spPr>` +
		`<p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp>`
}

func TestSlideFragments_PlainShapes(t *testing.T) {
	slide := slideHeader + `<p:cSld><p:spTree>` +
		textShape(100, 50, "FB Wallpost [01/02]") +
		textShape(100, 150, "Reach: 5,000") +
		`<p:sp><p:spPr/><p:txBody><a:p><a:r><a:t>   </a:t></a:r></a:p></p:txBody></p:sp>` +
		`</p:spTree></p:cSld></p:sld>`

	r, err := Open(writeDeck(t, slide), nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 1, r.SlideCount())

	fragments, err := r.SlideFragments(1)
	require.NoError(t, err)
	require.Len(t, fragments, 2, "whitespace-only shape must be skipped")

	assert.Equal(t, domain.TextFragment{Text: "FB Wallpost [01/02]", Left: 100, Top: 50}, fragments[0])
	assert.Equal(t, domain.TextFragment{Text: "Reach: 5,000", Left: 100, Top: 150}, fragments[1])
}

func TestSlideFragments_GroupOffsetTranslation(t *testing.T) {
	slide := slideHeader + `<p:cSld><p:spTree>` +
		`<p:grpSp><p:grpSpPr><a:xfrm>` +
		`<a:off x="1000" y="2000"/><a:chOff x="100" y="200"/>` +
		`</a:xfrm></p:grpSpPr>` +
		textShape(150, 250, "Engagement: 340") +
		`</p:grpSp>` +
		`</p:spTree></p:cSld></p:sld>`

	r, err := Open(writeDeck(t, slide), nil)
	require.NoError(t, err)
	defer r.Close()

	fragments, err := r.SlideFragments(1)
	require.NoError(t, err)
	require.Len(t, fragments, 1)

	// 1000 + (150-100), 2000 + (250-200)
	assert.Equal(t, int64(1050), fragments[0].Left)
	assert.Equal(t, int64(2050), fragments[0].Top)
}

func TestSlideFragments_TableCellsCollapseToFramePosition(t *testing.T) {
	slide := slideHeader + `<p:cSld><p:spTree>` +
		`<p:graphicFrame><p:xfrm><a:off x="300" y="400"/></p:xfrm>` +
		`<a:graphic><a:graphicData><a:tbl>` +
		`<a:tr>` +
		`<a:tc><a:txBody><a:p><a:r><a:t>Reach</a:t></a:r></a:p></a:txBody></a:tc>` +
		`<a:tc><a:txBody><a:p><a:r><a:t>1,200</a:t></a:r></a:p></a:txBody></a:tc>` +
		`<a:tc><a:txBody><a:p></a:p></a:txBody></a:tc>` +
		`</a:tr>` +
		`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>` +
		`</p:spTree></p:cSld></p:sld>`

	r, err := Open(writeDeck(t, slide), nil)
	require.NoError(t, err)
	defer r.Close()

	fragments, err := r.SlideFragments(1)
	require.NoError(t, err)
	require.Len(t, fragments, 2, "empty cell must be skipped")

	for _, f := range fragments {
		assert.Equal(t, int64(300), f.Left)
		assert.Equal(t, int64(400), f.Top)
	}
	assert.Equal(t, "Reach", fragments[0].Text)
	assert.Equal(t, "1,200", fragments[1].Text)
}

func TestSlideFragments_OutOfRange(t *testing.T) {
	slide := slideHeader + `<p:cSld><p:spTree>` + textShape(0, 0, "x") + `</p:spTree></p:cSld></p:sld>`

	r, err := Open(writeDeck(t, slide), nil)
	require.NoError(t, err)
	defer r.Close()

	for _, n := range []int{0, -1, 2, 99} {
		fragments, err := r.SlideFragments(n)
		assert.NoError(t, err)
		assert.Empty(t, fragments)
	}
}

func TestOpen_SlideOrderIsNumeric(t *testing.T) {
	mk := func(text string) string {
		return slideHeader + `<p:cSld><p:spTree>` + textShape(0, 0, text) + `</p:spTree></p:cSld></p:sld>`
	}
	// Entries are written as slide1, slide2, slide10; numeric order must hold.
	r, err := Open(writeDeck(t, mk("first"), mk("second"), mk("tenth")), nil)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 3, r.SlideCount())

	fragments, err := r.SlideFragments(3)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "tenth", fragments[0].Text)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.pptx"), nil)
	assert.Error(t, err)
}
