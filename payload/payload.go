// Package payload defines the SignablePayload, the structured description of a
// transaction that is shown to a user before they approve a signature.
//
// The JSON shape produced by encoding/json is part of the contract: field
// order and nesting are what a wallet display renders, so builders in this
// package never reorder fields.
package payload

// Field type tags. Each tag pairs with exactly one populated variant below.
const (
	TypeText          = "text_v2"
	TypeNumber        = "number"
	TypeAmount        = "amount_v2"
	TypeAddress       = "address_v2"
	TypePreviewLayout = "preview_layout"
	TypeListLayout    = "list_layout"
	TypeDivider       = "divider"
)

// Version is the payload format version emitted by this module.
const Version = "0"

// SignablePayload is the final output of the decoding pipeline.
type SignablePayload struct {
	Version     string
	Title       string
	Subtitle    string `json:",omitempty"`
	Fields      []Field
	PayloadType string
}

// Field is one display entry. Type selects which of the variant pointers is
// populated; all others stay nil.
type Field struct {
	FallbackText  string
	Type          string
	Label         string
	TextV2        *Text          `json:",omitempty"`
	Number        *Number        `json:",omitempty"`
	AmountV2      *Amount        `json:",omitempty"`
	AddressV2     *Address       `json:",omitempty"`
	PreviewLayout *PreviewLayout `json:",omitempty"`
	ListLayout    *ListLayout    `json:",omitempty"`
	Divider       *Divider       `json:",omitempty"`
}

type Text struct {
	Text string
}

// Number is kept as a decimal string so 256-bit integers survive JSON.
type Number struct {
	Number string
}

type Amount struct {
	Amount       string
	Abbreviation string `json:",omitempty"`
}

type Address struct {
	Address    string
	Name       string
	Memo       string `json:",omitempty"`
	AssetLabel string
	BadgeText  string `json:",omitempty"`
}

// PreviewLayout pairs a headline (Condensed) with the full detail (Expanded).
// Condensed is what a constrained display shows and must be derivable from
// Expanded.
type PreviewLayout struct {
	Title     Text
	Subtitle  *Text       `json:",omitempty"`
	Condensed *ListLayout `json:",omitempty"`
	Expanded  *ListLayout `json:",omitempty"`
}

type ListLayout struct {
	Fields []AnnotatedField
}

type DividerStyle string

const DividerStyleThin DividerStyle = "THIN"

type Divider struct {
	Style DividerStyle
}

// Annotation is an optional hint attached to a nested field.
type Annotation struct {
	Text string
}

// AnnotatedField is a Field nested inside a list layout. The embedded Field
// is flattened into the same JSON object.
type AnnotatedField struct {
	Field
	StaticAnnotation *Annotation `json:",omitempty"`
}

// New returns an Ethereum transaction payload with the given title.
func New(title string, payloadType string) *SignablePayload {
	return &SignablePayload{
		Version:     Version,
		Title:       title,
		Fields:      []Field{},
		PayloadType: payloadType,
	}
}

// Append adds fields in order.
func (p *SignablePayload) Append(fields ...Field) {
	p.Fields = append(p.Fields, fields...)
}

// FieldByLabel returns the first top-level field carrying label.
func (p *SignablePayload) FieldByLabel(label string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}

// DisplayText returns the most specific human text for the field: the
// variant's own value when it has one, the fallback text otherwise.
func (f Field) DisplayText() string {
	switch f.Type {
	case TypeText:
		if f.TextV2 != nil {
			return f.TextV2.Text
		}
	case TypeNumber:
		if f.Number != nil {
			return f.Number.Number
		}
	case TypeAmount:
		if f.AmountV2 != nil {
			if f.AmountV2.Abbreviation == "" {
				return f.AmountV2.Amount
			}
			return f.AmountV2.Amount + " " + f.AmountV2.Abbreviation
		}
	case TypeAddress:
		if f.AddressV2 != nil {
			if f.AddressV2.Name == "" {
				return f.AddressV2.Address
			}
			return f.AddressV2.Name + " (" + f.AddressV2.Address + ")"
		}
	case TypePreviewLayout:
		if f.PreviewLayout != nil && f.PreviewLayout.Subtitle != nil {
			return f.PreviewLayout.Subtitle.Text
		}
	}
	return f.FallbackText
}
