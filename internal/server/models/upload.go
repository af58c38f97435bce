// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"gestoria/internal/api"
)

// Upload describes one stored document: where the payload lives, its
// fingerprint, and how far the downstream processor got with it.
type Upload struct {
	ID               string
	UserID           string
	Tipo             api.DocumentKind
	OriginalFilename string

	// StoragePath is the file-store location of the payload (a local path
	// or an object-store URL, depending on the configured driver).
	StoragePath string
	MimeType    string
	SizeBytes   int64
	SHA256      string

	// Status tracks the processing lifecycle; Detail carries the last
	// processor response when the status is FAILED.
	Status api.UploadStatus
	Detail string

	// FacturaID links the upload to the invoice extracted from it, once the
	// processor callback reports success.
	FacturaID *string

	CreatedAt time.Time
}
