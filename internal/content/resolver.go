// Package content maps a category to its fixed draft content and stamps it
// with generation metadata. It performs no I/O beyond reading its entropy
// source and never fails once constructed.
package content

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftgen/internal/model"
)

// Section titles, in document order.
const (
	SectionObjectives   = "Tujuan"
	SectionProblems     = "Permasalahan Pokok"
	SectionPolicies     = "Arah Kebijakan"
	SectionLegalBasis   = "Landasan Hukum"
	SectionFiscalImpact = "Dampak Fiskal & Ekonomi"
	SectionGovernance   = "Kelembagaan & Tata Kelola"
	SectionSanctions    = "Pengawasan & Sanksi"
	SectionTimeline     = "Timeline Implementasi"
)

// WIB is the fixed UTC+7 civil zone used for all display times.
var WIB = time.FixedZone("WIB", 7*60*60)

// Option configures a Resolver.
type Option func(*Resolver)

// WithEntropy sets the randomness source for generation ID suffixes.
func WithEntropy(r io.Reader) Option {
	return func(res *Resolver) {
		if r != nil {
			res.entropy = r
		}
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *Catalog) Option {
	return func(res *Resolver) {
		if c != nil {
			res.catalog = c
		}
	}
}

// Resolver turns a category selector into a ContentBundle.
type Resolver struct {
	catalog *Catalog
	entropy io.Reader
}

// New builds a Resolver backed by the embedded catalog.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{entropy: rand.Reader}
	for _, opt := range opts {
		opt(r)
	}
	if r.catalog == nil {
		c, err := ParseCatalog(embeddedCatalog)
		if err != nil {
			return nil, err
		}
		r.catalog = c
	}
	return r, nil
}

// Categories lists the supported category identifiers.
func (r *Resolver) Categories() []string {
	return r.catalog.Names()
}

// Default is the category unknown selectors fall back to.
func (r *Resolver) Default() string {
	return r.catalog.Default
}

// Resolve returns the complete bundle for category at now. Unknown
// categories silently resolve to the default one.
func (r *Resolver) Resolve(category string, now time.Time) *model.ContentBundle {
	cat := r.catalog.lookup(category)
	sanctions := []string{cat.Sanctions}

	return &model.ContentBundle{
		Category: cat.Name,
		Title:    cat.Title,
		Metadata: model.BundleMetadata{
			GeneratedAt:  now.In(WIB),
			GenerationID: fmt.Sprintf("%s-%s-%s", model.DocumentToken, categoryCode(cat.Name), r.suffix()),
			Synopsis: fmt.Sprintf(
				"Dokumen ini adalah draf awal RUU sektor %s untuk kebutuhan pembahasan publik dan harmonisasi.",
				strings.ToLower(cat.Name),
			),
		},
		Sections: r.catalog.sections(cat, sanctions),
		Articles: r.catalog.articles(sanctions),
	}
}

// suffix draws 8 hex characters from the random bytes of a v4 UUID.
func (r *Resolver) suffix() string {
	u, err := uuid.NewRandomFromReader(r.entropy)
	if err != nil {
		u = uuid.New()
	}
	return hex.EncodeToString(u[:4])
}

func categoryCode(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
