package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"slidepulse/pkg/contracts/domain"
)

var slideNamePattern = regexp.MustCompile(`^slide(\d+)\.xml$`)

// Reader provides access to the slides of one presentation file.
type Reader struct {
	archive *zip.ReadCloser
	slides  []*zip.File
	logger  *slog.Logger
}

// Open opens a .pptx package and indexes its slide parts in slide order.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation %s: %w", filepath.Base(path), err)
	}

	var slides []*zip.File
	for _, file := range archive.File {
		if filepath.Dir(file.Name) != "ppt/slides" {
			continue
		}
		if slideNamePattern.MatchString(filepath.Base(file.Name)) {
			slides = append(slides, file)
		}
	}

	// slide10.xml must sort after slide2.xml, so order numerically.
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})

	return &Reader{
		archive: archive,
		slides:  slides,
		logger:  logger.With(slog.String("component", "pptx.reader")),
	}, nil
}

// Close releases the underlying zip archive.
func (r *Reader) Close() error {
	return r.archive.Close()
}

// SlideCount returns the number of slides in the presentation.
func (r *Reader) SlideCount() int {
	return len(r.slides)
}

// SlideFragments returns every positioned text fragment on the given
// 1-based slide. An out-of-range slide number yields an empty list rather
// than an error; a slide whose XML cannot be decoded is an error.
func (r *Reader) SlideFragments(slideNumber int) ([]domain.TextFragment, error) {
	if slideNumber < 1 || slideNumber > len(r.slides) {
		return nil, nil
	}

	file := r.slides[slideNumber-1]
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open slide part %s: %w", file.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	decoder.CharsetReader = charset.NewReaderLabel

	var slide slideXML
	if err := decoder.Decode(&slide); err != nil {
		return nil, fmt.Errorf("failed to decode slide part %s: %w", file.Name, err)
	}

	fragments := collectTree(&slide.CSld.SpTree, 0, 0)

	r.logger.Debug("slide fragments collected",
		slog.Int("slide", slideNumber),
		slog.Int("fragments", len(fragments)))

	return fragments, nil
}

func slideNumber(name string) int {
	m := slideNamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// --- DrawingML structures ---
//
// encoding/xml matches on local element names, so the p: and a: namespace
// prefixes used by PowerPoint do not need to be spelled out.

type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    struct {
		SpTree shapeTree `xml:"spTree"`
	} `xml:"cSld"`
}

type shapeTree struct {
	Shapes     []shapeXML        `xml:"sp"`
	Connectors []shapeXML        `xml:"cxnSp"`
	Groups     []groupXML        `xml:"grpSp"`
	Frames     []graphicFrameXML `xml:"graphicFrame"`
}

type shapeXML struct {
	SpPr struct {
		Xfrm *xfrmXML `xml:"xfrm"`
	} `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type groupXML struct {
	GrpSpPr struct {
		Xfrm *xfrmXML `xml:"xfrm"`
	} `xml:"grpSpPr"`
	Shapes     []shapeXML        `xml:"sp"`
	Connectors []shapeXML        `xml:"cxnSp"`
	Groups     []groupXML        `xml:"grpSp"`
	Frames     []graphicFrameXML `xml:"graphicFrame"`
}

type graphicFrameXML struct {
	Xfrm  *xfrmXML  `xml:"xfrm"`
	Table *tableXML `xml:"graphic>graphicData>tbl"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

type xfrmXML struct {
	Off   *pointXML `xml:"off"`
	ChOff *pointXML `xml:"chOff"`
}

type pointXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs   []runXML `xml:"r"`
	Fields []runXML `xml:"fld"`
}

type runXML struct {
	Text string `xml:"t"`
}

// --- tree traversal ---

// collectTree flattens one shape tree into fragments, translating every
// position by (offsetX, offsetY) so nested group children end up in slide
// coordinates.
func collectTree(tree *shapeTree, offsetX, offsetY int64) []domain.TextFragment {
	var fragments []domain.TextFragment

	for i := range tree.Shapes {
		fragments = appendShape(fragments, &tree.Shapes[i], offsetX, offsetY)
	}
	for i := range tree.Connectors {
		fragments = appendShape(fragments, &tree.Connectors[i], offsetX, offsetY)
	}
	for i := range tree.Frames {
		fragments = appendFrame(fragments, &tree.Frames[i], offsetX, offsetY)
	}
	for i := range tree.Groups {
		fragments = append(fragments, collectGroup(&tree.Groups[i], offsetX, offsetY)...)
	}

	return fragments
}

func appendShape(fragments []domain.TextFragment, shape *shapeXML, offsetX, offsetY int64) []domain.TextFragment {
	if shape.TxBody == nil {
		return fragments
	}
	text := shape.TxBody.text()
	if text == "" {
		return fragments
	}

	left, top := origin(shape.SpPr.Xfrm)
	return append(fragments, domain.TextFragment{
		Text: text,
		Left: left + offsetX,
		Top:  top + offsetY,
	})
}

// appendFrame emits one fragment per non-empty table cell, all positioned
// at the frame's own offset. Table XML carries no per-cell geometry, so
// cell structure is recovered later by the table reassembler.
func appendFrame(fragments []domain.TextFragment, frame *graphicFrameXML, offsetX, offsetY int64) []domain.TextFragment {
	if frame.Table == nil {
		return fragments
	}

	left, top := origin(frame.Xfrm)
	left += offsetX
	top += offsetY

	for _, row := range frame.Table.Rows {
		for _, cell := range row.Cells {
			if cell.TxBody == nil {
				continue
			}
			text := cell.TxBody.text()
			if text == "" {
				continue
			}
			fragments = append(fragments, domain.TextFragment{
				Text: text,
				Left: left,
				Top:  top,
			})
		}
	}

	return fragments
}

func collectGroup(group *groupXML, offsetX, offsetY int64) []domain.TextFragment {
	// Children of a group are positioned in the group's child coordinate
	// space; translate them by off-chOff to land in slide coordinates.
	if group.GrpSpPr.Xfrm != nil {
		if off := group.GrpSpPr.Xfrm.Off; off != nil {
			offsetX += off.X
			offsetY += off.Y
		}
		if chOff := group.GrpSpPr.Xfrm.ChOff; chOff != nil {
			offsetX -= chOff.X
			offsetY -= chOff.Y
		}
	}

	tree := shapeTree{
		Shapes:     group.Shapes,
		Connectors: group.Connectors,
		Groups:     group.Groups,
		Frames:     group.Frames,
	}
	return collectTree(&tree, offsetX, offsetY)
}

func origin(x *xfrmXML) (int64, int64) {
	if x == nil || x.Off == nil {
		// Placeholder shapes inherit geometry from the layout part.
		return 0, 0
	}
	return x.Off.X, x.Off.Y
}

// text joins the runs of every paragraph, one line per paragraph, and
// trims the result. Whitespace-only bodies come back empty.
func (b *txBodyXML) text() string {
	var lines []string
	for _, p := range b.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
		}
		for _, f := range p.Fields {
			sb.WriteString(f.Text)
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
