package api

import "strings"

// MIME types accepted by the upload intake.
const (
	MimePDF  = "application/pdf"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AcceptedUpload reports whether a candidate file may enter the upload queue.
// The declared content type wins when it matches the allow-list; when the
// type is missing or unrecognized the lowercase filename extension decides.
func AcceptedUpload(filename, contentType string) bool {
	switch contentType {
	case MimePDF, MimeXLSX:
		return true
	}
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".pdf") || strings.HasSuffix(name, ".xlsx")
}
