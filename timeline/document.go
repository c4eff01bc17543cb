package timeline

// Document is the serializable form of a Plan, consumed by the plan preview
// and its JSON schema.
type Document struct {
	Items           []DocumentItem `json:"items"`
	Scale           float64        `json:"scale"`
	TotalNeeded     float64        `json:"total_needed_seconds"`
	Target          *float64       `json:"target_seconds,omitempty"`
	DurationSeconds float64        `json:"duration_seconds"`
}

// DocumentItem is one scheduled slot of a Document.
type DocumentItem struct {
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	Ordinal         int     `json:"ordinal"`
	RawSeconds      float64 `json:"raw_seconds"`
	Effective       float64 `json:"effective_seconds"`
	FadeIn          *Window `json:"fade_in,omitempty"`
	FadeOut         *Window `json:"fade_out,omitempty"`
	SuppressFadeIn  bool    `json:"suppress_fade_in,omitempty"`
	SuppressFadeOut bool    `json:"suppress_fade_out,omitempty"`
}

// Document renders the plan into its serializable form.
func (p *Plan) Document() Document {
	document := Document{
		Items:           make([]DocumentItem, len(p.Slots)),
		Scale:           p.Scale,
		TotalNeeded:     p.TotalNeeded,
		DurationSeconds: p.Duration(),
	}

	if target, ok := p.Target.Get(); ok {
		document.Target = &target
	}

	for i, slot := range p.Slots {
		item := DocumentItem{
			Name:            slot.Item.Name(),
			Kind:            slot.Item.Kind.String(),
			Ordinal:         slot.Item.Ordinal,
			RawSeconds:      slot.Raw,
			Effective:       slot.Effective,
			SuppressFadeIn:  slot.Item.SuppressFadeIn,
			SuppressFadeOut: slot.Item.SuppressFadeOut,
		}

		if window, ok := slot.FadeIn.Get(); ok {
			item.FadeIn = &window
		}
		if window, ok := slot.FadeOut.Get(); ok {
			item.FadeOut = &window
		}

		document.Items[i] = item
	}

	return document
}
