package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"draftgen/internal/model"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// sanctionsRef is the clauses_from value that binds an article to the
// category's sanctions text.
const sanctionsRef = "sanctions"

const (
	expectedCategories = 3
	expectedArticles   = 6
)

// Category is the fixed content authored for one sector.
type Category struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Objectives []string `yaml:"objectives"`
	Problems   []string `yaml:"problems"`
	Policies   []string `yaml:"policies"`
	Sanctions  string   `yaml:"sanctions"`
}

// SharedSections holds the sections identical across all categories.
type SharedSections struct {
	LegalBasis   []string `yaml:"legal_basis"`
	FiscalImpact []string `yaml:"fiscal_impact"`
	Governance   []string `yaml:"governance"`
	Timeline     []string `yaml:"timeline"`
}

// ArticleTemplate is an article stub. ClausesFrom, when set, names the
// category field the clauses are taken from instead of Clauses.
type ArticleTemplate struct {
	Number      string   `yaml:"number"`
	Heading     string   `yaml:"heading"`
	Clauses     []string `yaml:"clauses"`
	ClausesFrom string   `yaml:"clauses_from"`
}

// Catalog is the static content table the resolver looks categories up in.
type Catalog struct {
	Default    string            `yaml:"default"`
	Categories []Category        `yaml:"categories"`
	Shared     SharedSections    `yaml:"shared"`
	Articles   []ArticleTemplate `yaml:"articles"`

	byName map[string]*Category
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Categories) != expectedCategories {
		return fmt.Errorf("expected %d categories, got %d", expectedCategories, len(c.Categories))
	}
	c.byName = make(map[string]*Category, len(c.Categories))
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Name == "" || cat.Title == "" {
			return fmt.Errorf("category %d: name and title are required", i)
		}
		if cat.Sanctions == "" {
			return fmt.Errorf("category %s: sanctions text is required", cat.Name)
		}
		if _, dup := c.byName[cat.Name]; dup {
			return fmt.Errorf("duplicate category %s", cat.Name)
		}
		c.byName[cat.Name] = cat
	}
	if _, ok := c.byName[c.Default]; !ok {
		return fmt.Errorf("default category %q is not defined", c.Default)
	}

	if len(c.Articles) != expectedArticles {
		return fmt.Errorf("expected %d articles, got %d", expectedArticles, len(c.Articles))
	}
	sanctionsBound := false
	for _, a := range c.Articles {
		switch a.ClausesFrom {
		case "":
			if len(a.Clauses) == 0 {
				return fmt.Errorf("%s has no clauses", a.Number)
			}
		case sanctionsRef:
			sanctionsBound = true
		default:
			return fmt.Errorf("%s: unknown clauses_from %q", a.Number, a.ClausesFrom)
		}
	}
	if !sanctionsBound {
		return errors.New("no article takes its clauses from the sanctions section")
	}
	return nil
}

// lookup returns the named category, or the default one when the name is
// not in the catalog.
func (c *Catalog) lookup(name string) *Category {
	if cat, ok := c.byName[name]; ok {
		return cat
	}
	return c.byName[c.Default]
}

// Names lists category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, cat.Name)
	}
	return out
}

// sections builds the eight body sections for cat. The sanctions section
// shares its backing slice with the article that references it.
func (c *Catalog) sections(cat *Category, sanctions []string) []model.Section {
	return []model.Section{
		{Title: SectionObjectives, Items: clone(cat.Objectives)},
		{Title: SectionProblems, Items: clone(cat.Problems)},
		{Title: SectionPolicies, Items: clone(cat.Policies)},
		{Title: SectionLegalBasis, Items: clone(c.Shared.LegalBasis)},
		{Title: SectionFiscalImpact, Items: clone(c.Shared.FiscalImpact)},
		{Title: SectionGovernance, Items: clone(c.Shared.Governance)},
		{Title: SectionSanctions, Items: sanctions},
		{Title: SectionTimeline, Items: clone(c.Shared.Timeline)},
	}
}

func (c *Catalog) articles(sanctions []string) []model.Article {
	out := make([]model.Article, 0, len(c.Articles))
	for _, a := range c.Articles {
		clauses := clone(a.Clauses)
		if a.ClausesFrom == sanctionsRef {
			clauses = sanctions
		}
		out = append(out, model.Article{Number: a.Number, Heading: a.Heading, Clauses: clauses})
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
