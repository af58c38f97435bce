// Package buildinfo exposes the build identification stamped into the
// binary at link time.
package buildinfo

import (
	"fmt"
	"io"
)

// Set via -ldflags, e.g.
//
//	go build -ldflags "-X gestoria/internal/buildinfo.buildVersion=v1.2.0"
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build identification to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
