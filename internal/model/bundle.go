package model

import "time"

// Section is one titled, bulleted block of the draft body.
type Section struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// Article is one numbered legal-style unit ("Pasal") with its clauses.
type Article struct {
	Number  string   `json:"number" yaml:"number"`
	Heading string   `json:"heading" yaml:"heading"`
	Clauses []string `json:"clauses" yaml:"clauses"`
}

// BundleMetadata stamps a bundle with generation details.
type BundleMetadata struct {
	// GeneratedAt is expressed in the fixed UTC+7 civil zone.
	GeneratedAt  time.Time `json:"generated_at"`
	GenerationID string    `json:"generation_id"`
	Synopsis     string    `json:"synopsis"`
}

// ContentBundle is the fully resolved content for one draft, prior to layout.
// It is built fresh per request and never mutated afterwards.
type ContentBundle struct {
	Category string         `json:"category"`
	Title    string         `json:"title"`
	Metadata BundleMetadata `json:"metadata"`
	Sections []Section      `json:"sections"`
	Articles []Article      `json:"articles"`
}

// RenderedDocument is the terminal PDF artifact handed to the caller.
type RenderedDocument struct {
	Bytes       []byte
	Filename    string
	ContentType string
	Pages       int
}

// DocumentToken is the document-type token opening generation IDs and
// suggested filenames ("Rancangan Undang-Undang").
const DocumentToken = "RUU"

// PDFContentType is the MIME type of every rendered document.
const PDFContentType = "application/pdf"
