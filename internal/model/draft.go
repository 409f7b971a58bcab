package model

import "time"

// Draft is a history entry for a generated document.
// The PDF bytes live in object storage under StoragePath; this record only
// carries metadata and is free of persistence-specific tags.
type Draft struct {
	ID           string    `json:"id"`
	GenerationID string    `json:"generation_id"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	Pages        int       `json:"pages"`
	CreatedAt    time.Time `json:"created_at"`
	ViewedAt     time.Time `json:"viewed_at"`
}
