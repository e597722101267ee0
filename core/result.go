package core

import "errors"

// Conversion failures. None of them are fatal: the page keeps its original
// rendering and the reason is reported in Result.Reason.
var (
	ErrMissingDependency = errors.New("highlighting engine not available")
	ErrMissingTarget     = errors.New("no source block found")
	ErrAlreadyProcessed  = errors.New("source block already processed")
	ErrLineCountMismatch = errors.New("highlighted output changed the line count")
)

// Status is the outcome of a conversion.
type Status int

const (
	// StatusSkipped means the document was left unmodified.
	StatusSkipped Status = iota
	// StatusConverted means the block was replaced with a numbered, highlighted block.
	StatusConverted
	// StatusUnnumbered means the block was replaced without a line-number column.
	StatusUnnumbered
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusUnnumbered:
		return "unnumbered"
	default:
		return "skipped"
	}
}

// Result describes what a conversion did to a document.
type Result struct {
	Status Status
	// Reason is nil after a full conversion, otherwise it names the guard
	// that stopped or degraded the conversion.
	Reason error
	// Source is the extracted plain source text.
	Source string
	// Anchors are the line anchors captured from the original block.
	Anchors []Anchor
	// Block is the replacement; nil when the document was left unmodified.
	Block *ConvertedBlock
}

// Modified reports whether the document was changed.
func (r Result) Modified() bool {
	return r.Status != StatusSkipped
}
