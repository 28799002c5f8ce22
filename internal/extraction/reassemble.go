package extraction

import (
	"regexp"
	"sort"
	"strings"

	"slidepulse/pkg/contracts/domain"
)

// DefaultRowTolerance is the vertical distance within which table-cell
// fragments count as one row. Table cells all collapse to the table
// shape's single position, so the default is deliberately huge: anything
// not clearly on a separate row merges together.
const DefaultRowTolerance int64 = 100000

const tableFragmentMaxLen = 30

// metricLabelTokens are the bare labels a decomposed table cell can carry.
var metricLabelTokens = map[string]domain.MetricName{
	"reach":      domain.MetricReach,
	"engagement": domain.MetricEngagement,
	"likes":      domain.MetricLikes,
	"shares":     domain.MetricShares,
	"comments":   domain.MetricComments,
	"saved":      domain.MetricSaved,
	"views":      domain.MetricViews,
}

var numericPattern = regexp.MustCompile(`^\d[\d,]*$`)

// ReassembleTableCells undoes the one-point-per-table collapse of the
// shape reader: lone metric-label fragments followed by lone numeric
// fragments on the same row are stitched back into a single
// "Label: value" fragment positioned like the label. Everything else
// passes through unchanged, in its original order, so a list with no
// remaining label/value singleton pairs comes back identical.
func ReassembleTableCells(fragments []domain.TextFragment, rowTolerance int64) []domain.TextFragment {
	if rowTolerance <= 0 {
		rowTolerance = DefaultRowTolerance
	}
	if len(fragments) < 2 {
		return fragments
	}

	type candidate struct {
		index int
		frag  domain.TextFragment
	}

	var candidates []candidate
	for i, f := range fragments {
		if isTableCellCandidate(f.Text) {
			candidates = append(candidates, candidate{index: i, frag: f})
		}
	}
	if len(candidates) < 2 {
		return fragments
	}

	// Row-group the candidates by vertical proximity: same greedy
	// first-anchor bucketing as the column grouper, along the other axis.
	type row struct {
		anchorY int64
		members []candidate
	}
	var rows []row
	for _, c := range candidates {
		placed := false
		for i := range rows {
			if absDelta(rows[i].anchorY, c.frag.Top) <= rowTolerance {
				rows[i].members = append(rows[i].members, c)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{anchorY: c.frag.Top, members: []candidate{c}})
		}
	}

	// Pair (label, value) neighbors left-to-right within each row. The
	// results are recorded against original indexes so the output keeps
	// the input's ordering.
	stitched := make(map[int]string) // label index -> reassembled text
	consumed := make(map[int]bool)   // value indexes and dropped lone labels

	for _, r := range rows {
		members := r.members
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].frag.Left != members[j].frag.Left {
				return members[i].frag.Left < members[j].frag.Left
			}
			return members[i].index < members[j].index
		})

		for i := 0; i < len(members); {
			cur := members[i]
			if isMetricLabel(cur.frag.Text) {
				if i+1 < len(members) && numericPattern.MatchString(strings.TrimSpace(members[i+1].frag.Text)) {
					value := strings.TrimSpace(members[i+1].frag.Text)
					stitched[cur.index] = strings.TrimSpace(cur.frag.Text) + ": " + value
					consumed[members[i+1].index] = true
					i += 2
					continue
				}
				// A label with nothing to pair against is table debris.
				consumed[cur.index] = true
				i++
				continue
			}
			i++
		}
	}

	if len(stitched) == 0 && len(consumed) == 0 {
		return fragments
	}

	out := make([]domain.TextFragment, 0, len(fragments))
	for i, f := range fragments {
		if text, ok := stitched[i]; ok {
			out = append(out, domain.TextFragment{Text: text, Left: f.Left, Top: f.Top})
			continue
		}
		if consumed[i] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isMetricLabel(text string) bool {
	_, ok := metricLabelTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// isTableCellCandidate reports whether a fragment looks like one cell of a
// decomposed table: a bare metric label, a bare number, or any short text
// without brackets (brackets mark a genuine post title) and without a
// colon (a colon means the label and value are already joined).
func isTableCellCandidate(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if isMetricLabel(trimmed) {
		return true
	}
	if numericPattern.MatchString(strings.ReplaceAll(trimmed, ",", "")) {
		return true
	}
	return len(trimmed) < tableFragmentMaxLen &&
		!strings.ContainsAny(trimmed, "[]") &&
		!strings.Contains(trimmed, ":")
}
