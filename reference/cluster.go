package reference

// ClusterKind distinguishes the two shapes a cluster number may take: a
// single in-text running index, or a note number that may be shared by
// several clusters landing in the same footnote (Multi), or standalone
// (Single).
type ClusterKind int

const (
	ClusterInText ClusterKind = iota
	ClusterNoteSingle
	ClusterNoteMulti
)

// ClusterNumber is the document position of a cluster, supplied by the
// caller in document order.
type ClusterNumber struct {
	Kind ClusterKind
	// InText holds the running index when Kind == ClusterInText.
	InText int
	// Note holds the footnote number for ClusterNoteSingle and
	// ClusterNoteMulti.
	Note int
	// Index is the sub-position within a shared footnote, used only when
	// Kind == ClusterNoteMulti (the second, third, … cluster landing in
	// the same footnote).
	Index int
}

// Cluster is an ordered group of cites appearing at one position in the
// document, e.g. all the cites inside one set of parentheses or one
// footnote.
type Cluster struct {
	ID     string
	Cites  []Cite
	Number ClusterNumber
	Mode   Mode
}

// Position is the relationship between a cite and any earlier cite of the
// same reference in the document, used to select ibid/subsequent rendering
// rules.
type Position int

const (
	// PositionFirst is the first cite of its reference in the document.
	PositionFirst Position = iota
	// PositionIbid repeats the immediately preceding cite's reference with
	// no locator, or the same locator.
	PositionIbid
	// PositionIbidWithLocator repeats the immediately preceding cite's
	// reference with a different locator.
	PositionIbidWithLocator
	// PositionSubsequent is a non-adjacent repeat cite.
	PositionSubsequent
	// PositionNearNote is a non-adjacent repeat within near-note-distance
	// notes of the reference's first appearance.
	PositionNearNote
	// PositionFarNote is a non-adjacent repeat beyond near-note-distance.
	PositionFarNote
)
