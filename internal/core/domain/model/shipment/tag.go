package shipment

import (
	"shipping/internal/pkg/errs"
)

// tagMaxLength bounds the label so tags stay usable as index keys.
const tagMaxLength = 40

// Tag is a free-form label attached to a shipment.
// Tags are value objects compared by label; a shipment carries a set of them.
type Tag struct {
	label string
}

// NewTag creates a Tag from a label.
// The label must be non-empty and at most tagMaxLength characters.
func NewTag(label string) (Tag, error) {
	if label == "" {
		return Tag{}, errs.NewValueIsRequiredError("tag label")
	}

	if len(label) > tagMaxLength {
		return Tag{}, errs.NewValueIsOutOfRangeError("tag label length", len(label), 1, tagMaxLength)
	}

	return Tag{label: label}, nil
}

// Label returns the tag's label.
func (t Tag) Label() string {
	return t.label
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	return t.label
}
