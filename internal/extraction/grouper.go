package extraction

import (
	"sort"

	"slidepulse/pkg/contracts/domain"
)

// DefaultColumnTolerance is the horizontal distance within which a fragment
// still belongs to an existing column. Calibrated empirically for the
// target slide template, not a universal constant.
const DefaultColumnTolerance int64 = 200

// GroupColumns clusters fragments into left-to-right ordered columns, each
// internally ordered top-to-bottom. This collapses the 2-D slide layout
// into a 1-D sequence of post candidates.
//
// The clustering is a greedy single pass: fragments are visited in sorted
// order and assigned to the first column whose anchor is within tolerance
// of the fragment's left edge. Anchors never re-center once set, so a
// chain of fragments wider than the tolerance can still end up in one
// bucket if visited in the right order. That matches the template this
// pipeline was calibrated against and is kept deliberately.
func GroupColumns(fragments []domain.TextFragment, tolerance int64) []domain.Column {
	if tolerance <= 0 {
		tolerance = DefaultColumnTolerance
	}
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]domain.TextFragment, len(fragments))
	copy(sorted, fragments)

	// Ties broken by (top, text) so the grouping is identical no matter
	// what order the fragments arrived in.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Left != sorted[j].Left {
			return sorted[i].Left < sorted[j].Left
		}
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].Text < sorted[j].Text
	})

	var columns []domain.Column
	for _, fragment := range sorted {
		placed := false
		for i := range columns {
			if absDelta(columns[i].AnchorX, fragment.Left) <= tolerance {
				columns[i].Items = append(columns[i].Items, fragment)
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, domain.Column{
				AnchorX: fragment.Left,
				Items:   []domain.TextFragment{fragment},
			})
		}
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].AnchorX < columns[j].AnchorX
	})
	for i := range columns {
		items := columns[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].Top != items[b].Top {
				return items[a].Top < items[b].Top
			}
			return items[a].Text < items[b].Text
		})
	}

	return columns
}

func absDelta(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
