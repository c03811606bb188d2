// Package edit applies byte-range replacements to documents and renders the
// result as a unified diff.
package edit

import (
	"bytes"
	"fmt"
	"slices"
)

// Edit replaces the bytes [Start, End) of a document with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// RangeError describes an edit that does not fit the document.
type RangeError struct {
	Edit    Edit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits that overlap.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks that every edit lies within a document of length n.
func Validate(edits []Edit, n int) error {
	for _, e := range edits {
		switch {
		case e.Start < 0:
			return &RangeError{Edit: e, Message: "start offset is negative"}
		case e.End < e.Start:
			return &RangeError{Edit: e, Message: "end offset is before start offset"}
		case e.End > n:
			return &RangeError{Edit: e, Message: fmt.Sprintf("end offset %d exceeds content length %d", e.End, n)}
		}
	}
	return nil
}

// Sort orders edits by start offset, then by end offset.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// Prepare validates edits against a document of length n and returns them
// sorted. Overlapping edits are an error; edits that only touch are not.
func Prepare(edits []Edit, n int) ([]Edit, error) {
	if err := Validate(edits, n); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// Apply returns content with edits applied. content itself is not modified.
func Apply(content []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted, err := Prepare(edits, len(content))
	if err != nil {
		return nil, err
	}

	delta := 0
	for _, e := range sorted {
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes(), nil
}
