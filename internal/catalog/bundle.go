package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/cxready/internal/domain"
	"gopkg.in/yaml.v3"
)

// Bundle is a single YAML document holding both checklist tables.
type Bundle struct {
	Primary   []BundleItem      `yaml:"primary"`
	Secondary []BundleSecondary `yaml:"secondary"`
}

// BundleItem is a primary checklist row in a Bundle.
type BundleItem struct {
	ID       string  `yaml:"id"`
	Question string  `yaml:"question"`
	Category string  `yaml:"category"`
	Weight   float64 `yaml:"weight"`
	Advice   string  `yaml:"advice"`
}

// BundleSecondary is a secondary checklist row in a Bundle.
type BundleSecondary struct {
	Question    string `yaml:"question"`
	PrimaryLink string `yaml:"primary_link"`
}

// LoadBundle reads a YAML checklist bundle from disk.
func LoadBundle(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening checklist bundle: %w", domain.ErrDataLoad, err)
	}
	defer f.Close()
	return ReadBundle(f)
}

// ReadBundle parses a YAML checklist bundle.
func ReadBundle(r io.Reader) (*Catalog, error) {
	var b Bundle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: checklist bundle is empty", domain.ErrDataLoad)
		}
		return nil, fmt.Errorf("%w: parsing checklist bundle: %w", domain.ErrDataLoad, err)
	}

	primary := make([]domain.ChecklistItem, 0, len(b.Primary))
	for _, p := range b.Primary {
		primary = append(primary, domain.ChecklistItem{
			ID:       p.ID,
			Question: p.Question,
			Category: p.Category,
			Weight:   p.Weight,
			Advice:   p.Advice,
		})
	}
	secondary := make([]domain.SecondaryItem, 0, len(b.Secondary))
	for _, s := range b.Secondary {
		secondary = append(secondary, domain.SecondaryItem{Question: s.Question, PrimaryLink: s.PrimaryLink})
	}
	return New(primary, secondary)
}
