package payload

// NewTextField builds a text_v2 field whose fallback equals its text.
func NewTextField(label, text string) Field {
	return Field{
		FallbackText: text,
		Type:         TypeText,
		Label:        label,
		TextV2:       &Text{Text: text},
	}
}

// NewTextFieldWithFallback builds a text_v2 field whose fallback differs from
// the detailed text.
func NewTextFieldWithFallback(label, text, fallback string) Field {
	return Field{
		FallbackText: fallback,
		Type:         TypeText,
		Label:        label,
		TextV2:       &Text{Text: text},
	}
}

func NewNumberField(label, number string) Field {
	return Field{
		FallbackText: number,
		Type:         TypeNumber,
		Label:        label,
		Number:       &Number{Number: number},
	}
}

// NewAmountField builds an amount_v2 field. The fallback is "amount unit" or
// just amount when unit is empty.
func NewAmountField(label, amount, unit string) Field {
	fallback := amount
	if unit != "" {
		fallback = amount + " " + unit
	}
	return Field{
		FallbackText: fallback,
		Type:         TypeAmount,
		Label:        label,
		AmountV2:     &Amount{Amount: amount, Abbreviation: unit},
	}
}

// NewAddressField builds an address_v2 field. name and assetLabel may be
// empty.
func NewAddressField(label, address, name, assetLabel string) Field {
	return Field{
		FallbackText: address,
		Type:         TypeAddress,
		Label:        label,
		AddressV2: &Address{
			Address:    address,
			Name:       name,
			AssetLabel: assetLabel,
		},
	}
}

func NewDividerField() Field {
	return Field{
		FallbackText: "-",
		Type:         TypeDivider,
		Divider:      &Divider{Style: DividerStyleThin},
	}
}

// Preview collects the pieces of a preview layout before it is turned into
// a Field.
type Preview struct {
	Label     string
	Title     string
	Subtitle  string
	Condensed []Field
	Expanded  []Field
}

// Field builds the preview_layout field. The fallback text is the subtitle
// when set, the title otherwise. Empty lists are left nil.
func (p Preview) Field() Field {
	layout := &PreviewLayout{Title: Text{Text: p.Title}}
	fallback := p.Title
	if p.Subtitle != "" {
		layout.Subtitle = &Text{Text: p.Subtitle}
		fallback = p.Subtitle
	}
	if len(p.Condensed) > 0 {
		layout.Condensed = NewListLayout(p.Condensed...)
	}
	if len(p.Expanded) > 0 {
		layout.Expanded = NewListLayout(p.Expanded...)
	}
	label := p.Label
	if label == "" {
		label = p.Title
	}
	return Field{
		FallbackText:  fallback,
		Type:          TypePreviewLayout,
		Label:         label,
		PreviewLayout: layout,
	}
}

func NewListLayout(fields ...Field) *ListLayout {
	out := &ListLayout{Fields: make([]AnnotatedField, 0, len(fields))}
	for _, f := range fields {
		out.Fields = append(out.Fields, AnnotatedField{Field: f})
	}
	return out
}

// NewListLayoutField wraps fields in a list_layout field.
func NewListLayoutField(label string, fields ...Field) Field {
	return Field{
		FallbackText: label,
		Type:         TypeListLayout,
		Label:        label,
		ListLayout:   NewListLayout(fields...),
	}
}

// Plain returns the nested fields without their annotations.
func (l *ListLayout) Plain() []Field {
	if l == nil {
		return nil
	}
	out := make([]Field, 0, len(l.Fields))
	for _, af := range l.Fields {
		out = append(out, af.Field)
	}
	return out
}
