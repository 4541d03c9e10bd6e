package models

import (
	"time"

	"github.com/google/uuid"
)

// AppFile is a row of the app_files metadata table. Every upload creates a new
// row; the newest by created_at is the current distributable package. Stale
// rows are kept.
type AppFile struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BusinessID uuid.UUID `json:"business_id" db:"business_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	FileType   string    `json:"file_type" db:"file_type"`
	FileSize   int64     `json:"file_size" db:"file_size"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AppFileRef describes the optional package attached to a business record.
// Before persistence the payload travels inline as a base64 data URI in Data;
// after persistence only the time-limited URL is carried.
type AppFileRef struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
	Data string `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
}
