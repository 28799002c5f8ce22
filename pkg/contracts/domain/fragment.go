package domain

// TextFragment is one piece of extractable slide text with its absolute
// position in the presentation's native coordinate unit (EMU for OOXML).
// Fragments are value types; the pipeline never mutates one after creation.
type TextFragment struct {
	Text string `json:"text"`
	Left int64  `json:"left"`
	Top  int64  `json:"top"`
}

// Column is a spatial cluster of fragments sharing a similar horizontal
// position, used as a proxy for one logical post. AnchorX is the left
// coordinate of the first fragment assigned and never moves afterwards.
type Column struct {
	AnchorX int64
	Items   []TextFragment
}

// BatchResult is the outcome of extracting a set of presentation files.
type BatchResult struct {
	Records  []PostRecord  `json:"records"`
	Failures []FileFailure `json:"failures,omitempty"`
}

// FileFailure reports one presentation that could not be processed. The
// batch continues past these; they are surfaced alongside the records.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}
