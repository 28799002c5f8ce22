// Package extraction turns positioned slide text fragments into structured
// post records.
//
// The pipeline for one slide is: table-cell reassembly (stitch decomposed
// label/value cell pairs back into "Label: value" lines), spatial column
// grouping (one column per logical post), then per-column classification
// (header filtering, title capture, metric extraction and the acceptance
// heuristic). Accepted records are optionally enriched with a detected
// post type, and the batch layer aggregates records across files with
// global renumbering and per-file failure isolation.
package extraction
