package util

import (
	"fmt"
	"strings"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/ui"
)

const (
	branch   = "├─ "
	lastLeaf = "└─ "
	pipe     = "│  "
	gap      = "   "
)

// ── Build phase (pure: no UI side-effects) ──────────────────────────────────

// styledField colours a field value. Addresses with a resolved name are
// Success, unnamed ones Warn. Raw calldata is Critical since nothing could
// decode it.
func styledField(f payload.Field) ui.StyledText {
	switch f.Type {
	case payload.TypeAddress:
		if f.AddressV2 == nil {
			break
		}
		text := f.DisplayText()
		if f.AddressV2.BadgeText != "" {
			text += " [" + f.AddressV2.BadgeText + "]"
		}
		if f.AddressV2.Name == "" {
			return ui.StyledText{Text: text, Severity: ui.SeverityWarn}
		}
		return ui.StyledText{Text: text, Severity: ui.SeveritySuccess}
	case payload.TypeText:
		if f.Label == "Input Data" {
			return ui.StyledText{Text: f.DisplayText(), Severity: ui.SeverityCritical}
		}
	}
	return ui.StyledText{Text: f.DisplayText(), Severity: ui.SeverityInfo}
}

func buildFieldDisplay(f payload.Field) FieldDisplay {
	d := FieldDisplay{Label: f.Label, Type: f.Type, Value: styledField(f)}
	switch {
	case f.PreviewLayout != nil:
		d.Title = f.PreviewLayout.Title.Text
		if f.PreviewLayout.Subtitle != nil {
			d.Subtitle = f.PreviewLayout.Subtitle.Text
		}
		d.Condensed = buildFieldDisplays(f.PreviewLayout.Condensed.Plain())
		d.Expanded = buildFieldDisplays(f.PreviewLayout.Expanded.Plain())
	case f.ListLayout != nil:
		d.Items = buildFieldDisplays(f.ListLayout.Plain())
	}
	return d
}

func buildFieldDisplays(fields []payload.Field) []FieldDisplay {
	if len(fields) == 0 {
		return nil
	}
	out := make([]FieldDisplay, 0, len(fields))
	for _, f := range fields {
		out = append(out, buildFieldDisplay(f))
	}
	return out
}

// BuildPayloadDisplay converts p into its view-model.
func BuildPayloadDisplay(p *payload.SignablePayload) *PayloadDisplay {
	return &PayloadDisplay{
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		PayloadType: p.PayloadType,
		Fields:      buildFieldDisplays(p.Fields),
	}
}

// ── Print phase (reads only from the display struct, colours via u.Style) ────

// headline is the one-line form of a field: "Label: value" for leaves and
// "Title: Subtitle" for preview layouts, prefixed by the label when it says
// something the title does not.
func headline(u ui.UI, d FieldDisplay) string {
	if d.Title == "" {
		if d.Type == payload.TypeDivider {
			return "──"
		}
		if d.Type == payload.TypeListLayout {
			return d.Label
		}
		return fmt.Sprintf("%s: %s", d.Label, u.Style(d.Value))
	}
	line := d.Title
	if d.Subtitle != "" {
		line += ": " + d.Subtitle
	}
	if d.Label != "" && d.Label != d.Title {
		line = d.Label + " | " + line
	}
	return line
}

func printTree(u ui.UI, prefix string, fields []FieldDisplay, condensedOnly bool) {
	for i, d := range fields {
		connector, childPrefix := branch, prefix+pipe
		if i == len(fields)-1 {
			connector, childPrefix = lastLeaf, prefix+gap
		}
		u.Info("%s%s%s", prefix, connector, headline(u, d))
		if children := d.Children(condensedOnly); len(children) > 0 {
			printTree(u, childPrefix, children, condensedOnly)
		}
	}
}

// leafRows flattens the leaves of fields into label / value rows. Nested
// fields are skipped, the caller prints them as their own block.
func leafRows(u ui.UI, fields []FieldDisplay) [][]string {
	var rows [][]string
	for _, d := range fields {
		if d.Nested() || d.Type == payload.TypeDivider {
			continue
		}
		rows = append(rows, []string{d.Label, u.Style(d.Value)})
	}
	return rows
}

func printBlock(u ui.UI, d FieldDisplay) {
	u.Info("%s", headline(u, d))
	children := d.Children(false)
	if rows := leafRows(u, children); len(rows) > 0 {
		u.Table(nil, rows)
	}
	for _, c := range children {
		if c.Nested() {
			printBlock(u.Indent(), c)
		}
	}
}

func printTextDisplay(u ui.UI, d *PayloadDisplay) {
	u.Section(d.Title)
	if rows := leafRows(u, d.Fields); len(rows) > 0 {
		u.Table(nil, rows)
	}
	for _, f := range d.Fields {
		if f.Nested() {
			printBlock(u, f)
		}
	}
}

func printHumanDisplay(u ui.UI, d *PayloadDisplay, condensedOnly bool) {
	title := d.Title
	if d.Subtitle != "" {
		title += ": " + d.Subtitle
	}
	u.Critical("%s", title)
	printTree(u, "", d.Fields, condensedOnly)
}

// ── Public API ───────────────────────────────────────────────────────────────

// DisplayText prints p as bordered tables: one for the top-level leaves,
// then one block per nested field.
func DisplayText(u ui.UI, p *payload.SignablePayload) *PayloadDisplay {
	d := BuildPayloadDisplay(p)
	printTextDisplay(u, d)
	return d
}

// DisplayHuman prints p as a tree. With condensedOnly, preview layouts show
// only their condensed fields.
func DisplayHuman(u ui.UI, p *payload.SignablePayload, condensedOnly bool) *PayloadDisplay {
	d := BuildPayloadDisplay(p)
	printHumanDisplay(u, d, condensedOnly)
	return d
}

// PlainTree renders p as a colour-free tree, one line per field.
func PlainTree(p *payload.SignablePayload, condensedOnly bool) string {
	r := ui.NewRecordingUI()
	DisplayHuman(r, p, condensedOnly)
	lines := make([]string, 0, len(r.Entries()))
	for _, e := range r.Entries() {
		lines = append(lines, e.Value)
	}
	return strings.Join(lines, "\n")
}
