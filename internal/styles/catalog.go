package styles

import (
	"fmt"

	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

// Template turns a quotation into a document tree. Templates are pure:
// the same inputs always yield an identical tree.
type Template func(q model.Quotation, c model.CompanyInfo, l Labels) *layout.Document

// Catalog maps style names to templates for one document language.
type Catalog struct {
	labels Labels
}

func NewCatalog(lang Language) *Catalog {
	return &Catalog{labels: LabelsFor(lang)}
}

func (c *Catalog) Labels() Labels {
	return c.labels
}

// LabelsFor returns the labels a document of the given style is printed with.
func (c *Catalog) LabelsFor(name Name) Labels {
	if name == Business {
		return LabelsFor(English)
	}
	return c.labels
}

func (c *Catalog) template(name Name) (Template, error) {
	switch name {
	case Modern:
		return modern, nil
	case Classic:
		return classic, nil
	case Colorful:
		return colorful, nil
	case Business:
		return business, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
}

// Build lays out q with the named style.
func (c *Catalog) Build(name Name, q model.Quotation, company model.CompanyInfo) (*layout.Document, error) {
	tpl, err := c.template(name)
	if err != nil {
		return nil, err
	}
	doc := tpl(q, company, c.labels)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("style %s: %w", name, err)
	}
	return doc, nil
}

func (c *Catalog) Descriptions() []Description {
	names := Names()
	out := make([]Description, 0, len(names))
	for _, n := range names {
		out = append(out, Describe(n))
	}
	return out
}
