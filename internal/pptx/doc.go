// Package pptx reads PowerPoint (OOXML) presentations and exposes each
// slide's text-bearing shapes as positioned fragments.
//
// A .pptx file is a zip package; slides live under ppt/slides/slideN.xml
// as DrawingML shape trees. This package walks plain shapes, connector
// shapes, tables inside graphic frames and nested groups, and emits one
// fragment per logical text unit together with its absolute (left, top)
// offset in EMU. It has no knowledge of what the text means; downstream
// extraction decides which fragments form posts.
package pptx
