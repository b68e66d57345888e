package domain

// Template selects the visual layout used to print an invoice
type Template string

const (
	TemplateClassic      Template = "classic"
	TemplateModern       Template = "modern"
	TemplateMinimal      Template = "minimal"
	TemplateProfessional Template = "professional"
	TemplateCreative     Template = "creative"

	DefaultTemplate = TemplateClassic
)

// templateOrder is the order shown in pickers and used when cycling
var templateOrder = []Template{
	TemplateClassic,
	TemplateModern,
	TemplateMinimal,
	TemplateProfessional,
	TemplateCreative,
}

// Templates returns every known template in display order
func Templates() []Template {
	out := make([]Template, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// ParseTemplate maps a selector to a known template. Matching is exact, so
// "Modern" or " modern" is unknown. Empty or unknown values fall back to classic.
func ParseTemplate(s string) Template {
	t := Template(s)
	if t.Valid() {
		return t
	}
	return DefaultTemplate
}

// Valid reports whether t is one of the known templates
func (t Template) Valid() bool {
	for _, known := range templateOrder {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the template after t, wrapping around
func (t Template) Next() Template {
	current := ParseTemplate(string(t))
	for i, known := range templateOrder {
		if known == current {
			return templateOrder[(i+1)%len(templateOrder)]
		}
	}
	return DefaultTemplate
}

// Label returns the human readable name
func (t Template) Label() string {
	switch ParseTemplate(string(t)) {
	case TemplateModern:
		return "Modern"
	case TemplateMinimal:
		return "Minimal"
	case TemplateProfessional:
		return "Professional"
	case TemplateCreative:
		return "Creative"
	default:
		return "Classic"
	}
}

// Description returns the one line tagline shown next to the label
func (t Template) Description() string {
	switch ParseTemplate(string(t)) {
	case TemplateModern:
		return "Bold & Contemporary"
	case TemplateMinimal:
		return "Simple & Elegant"
	case TemplateProfessional:
		return "Traditional Business"
	case TemplateCreative:
		return "Colorful & Vibrant"
	default:
		return "Clean & Professional"
	}
}
