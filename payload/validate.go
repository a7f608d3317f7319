package payload

import (
	"github.com/pkg/errors"
)

// Validate checks that every field, recursively, has a type tag matching its
// populated variant and a non-empty fallback text.
func (p *SignablePayload) Validate() error {
	if p.Title == "" {
		return errors.New("title is empty")
	}
	for i, field := range p.Fields {
		if err := field.Validate(); err != nil {
			return errors.Wrapf(err, "failed to validate field idx %d", i)
		}
	}
	return nil
}

func (f *Field) Validate() error {
	if f.Type == "" {
		return errors.New("type is empty")
	}
	if f.FallbackText == "" {
		return errors.New("fallback_text is empty")
	}
	if n := f.variantCount(); n > 1 {
		return errors.Errorf("field %q populates %d variants", f.Label, n)
	}
	switch f.Type {
	case TypeText:
		if f.TextV2 == nil {
			return errors.New("text_v2 field is nil")
		}
		if f.TextV2.Text == "" {
			return errors.New("text_v2.text is empty")
		}
	case TypeNumber:
		if f.Number == nil {
			return errors.New("number field is nil")
		}
	case TypeAmount:
		if f.AmountV2 == nil {
			return errors.New("amount_v2 field is nil")
		}
		if f.AmountV2.Amount == "" {
			return errors.New("amount_v2.amount is empty")
		}
	case TypeAddress:
		if f.AddressV2 == nil {
			return errors.New("address_v2 field is nil")
		}
		if f.AddressV2.Address == "" {
			return errors.New("address_v2.address is empty")
		}
	case TypeDivider:
		if f.Divider == nil {
			return errors.New("divider field is nil")
		}
	case TypePreviewLayout:
		if f.PreviewLayout == nil {
			return errors.New("preview_layout field is nil")
		}
		if err := f.PreviewLayout.Condensed.validate(); err != nil {
			return errors.Wrap(err, "condensed")
		}
		if err := f.PreviewLayout.Expanded.validate(); err != nil {
			return errors.Wrap(err, "expanded")
		}
	case TypeListLayout:
		if f.ListLayout == nil {
			return errors.New("list_layout field is nil")
		}
		return f.ListLayout.validate()
	default:
		return errors.Errorf("unsupported field type: %s", f.Type)
	}
	return nil
}

func (f *Field) variantCount() int {
	n := 0
	for _, set := range []bool{
		f.TextV2 != nil,
		f.Number != nil,
		f.AmountV2 != nil,
		f.AddressV2 != nil,
		f.PreviewLayout != nil,
		f.ListLayout != nil,
		f.Divider != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (l *ListLayout) validate() error {
	if l == nil {
		return nil
	}
	for i := range l.Fields {
		if err := l.Fields[i].Field.Validate(); err != nil {
			return errors.Wrapf(err, "nested field idx %d", i)
		}
	}
	return nil
}
