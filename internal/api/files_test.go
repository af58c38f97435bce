package api

import "testing"

func TestAcceptedUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        bool
	}{
		{"pdf by mime", "factura enero", MimePDF, true},
		{"xlsx by mime", "ventas", MimeXLSX, true},
		{"pdf by extension", "factura.pdf", "", true},
		{"xlsx by extension", "VENTAS.XLSX", "", true},
		{"extension beats odd mime", "scan.pdf", "application/octet-stream", true},
		{"docx rejected", "report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"no hints", "archivo", "", false},
		{"image rejected", "foto.png", "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcceptedUpload(tt.filename, tt.contentType); got != tt.want {
				t.Fatalf("AcceptedUpload(%q, %q) = %v, want %v", tt.filename, tt.contentType, got, tt.want)
			}
		})
	}
}
