package util

import "github.com/tranvictor/visualsign/ui"

// FieldDisplay is the view-model of one payload field. Value is a StyledText
// so JSON gets plain strings while the terminal gets colours.
type FieldDisplay struct {
	Label string        `json:"label"`
	Type  string        `json:"type"`
	Value ui.StyledText `json:"value"` // serializes as string

	// Preview layouts only.
	Title     string         `json:"title,omitempty"`
	Subtitle  string         `json:"subtitle,omitempty"`
	Condensed []FieldDisplay `json:"condensed,omitempty"`
	Expanded  []FieldDisplay `json:"expanded,omitempty"`

	// List layouts only.
	Items []FieldDisplay `json:"items,omitempty"`
}

// Nested reports whether the field carries child fields.
func (d FieldDisplay) Nested() bool {
	return len(d.Condensed) > 0 || len(d.Expanded) > 0 || len(d.Items) > 0
}

// Children are the fields shown under d. condensedOnly picks the condensed
// list of a preview layout when it has one.
func (d FieldDisplay) Children(condensedOnly bool) []FieldDisplay {
	if len(d.Items) > 0 {
		return d.Items
	}
	if condensedOnly && len(d.Condensed) > 0 {
		return d.Condensed
	}
	if condensedOnly {
		return nil
	}
	return d.Expanded
}

// PayloadDisplay is the view-model of a whole SignablePayload.
type PayloadDisplay struct {
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle,omitempty"`
	PayloadType string         `json:"payload_type"`
	Fields      []FieldDisplay `json:"fields"`
}
