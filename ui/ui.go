package ui

import (
	"encoding/json"
	"io"
)

// Severity is the visual weight of a piece of inline text. Terminal output
// maps it to a colour, JSON and tests only ever see the plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, resolved / known
	SeverityWarn                     // yellow, unresolved / needs attention
	SeverityError                    // red
	SeverityCritical                 // bold, review before signing
)

// StyledText pairs a plain string with a Severity.
//
//	u.Info("To: %s", u.Style(row.Value))
type StyledText struct {
	Text     string
	Severity Severity
}

// MarshalJSON serializes StyledText as just its Text.
func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is the output side of the visualsign commands. TerminalUI writes to a
// terminal, RecordingUI captures calls for tests.
//
// Indent returns a child at one deeper level sharing the same writer, so
// nested payload fields can be printed by handing the child to a helper.
type UI interface {
	// Style colours t according to its Severity. Without colours the plain
	// text is returned unchanged.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error does not exit, callers decide what happens next.
	Error(format string, args ...any)
	// Critical is for what the user must read before signing: the payload
	// title and anything the decoders could not make sense of.
	Critical(format string, args ...any)

	// Section writes a separator centred around title, e.g.
	// "===== Ethereum Transaction =====".
	Section(title string)

	// KeyValue renders label / value rows with aligned values.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. A nil headers slice renders no header
	// row.
	Table(headers []string, rows [][]string)

	// TableWithGroups is Table with a divider between row groups.
	TableWithGroups(headers []string, groups [][][]string)

	Indent() UI

	// Writer prepends the current indentation to every line written to it.
	Writer() io.Writer
}
