// Package api defines the wire contract between the gestoria client and
// server: document kinds, upload statuses, and the JSON bodies exchanged
// by the REST endpoints.
package api

import (
	"errors"
	"strings"
)

// ErrUnknownKind is returned when a document kind is neither "factura" nor "venta".
var ErrUnknownKind = errors.New("tipo debe ser 'factura' o 'venta'")

// DocumentKind tags an upload as an incoming invoice or a sales report.
type DocumentKind string

const (
	KindFactura DocumentKind = "factura"
	KindVenta   DocumentKind = "venta"
)

// ParseDocumentKind normalizes s (case, surrounding space) and validates it.
func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindFactura, KindVenta:
		return k, nil
	}
	return "", ErrUnknownKind
}

func (k DocumentKind) Valid() bool {
	return k == KindFactura || k == KindVenta
}

// UploadStatus is the processing state of a stored upload record.
type UploadStatus string

const (
	StatusUploaded   UploadStatus = "UPLOADED"
	StatusProcessing UploadStatus = "PROCESSING"
	StatusProcessed  UploadStatus = "PROCESSED"
	StatusFailed     UploadStatus = "FAILED"
	StatusDuplicated UploadStatus = "DUPLICATED"
)

// CanRetry reports whether the record may be resubmitted to the processor.
// Only failed records expose the retry action.
func (s UploadStatus) CanRetry() bool {
	return s == StatusFailed
}
