// Package buildinfo exposes the version stamped into the binary.
//
// Release builds overwrite the defaults through ldflags:
//
//	go build -ldflags "\
//	    -X github.com/adofai-tools/tilebeat/pkg/buildinfo.Version=v1.2.0 \
//	    -X github.com/adofai-tools/tilebeat/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/adofai-tools/tilebeat/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"     // semantic version, e.g. "v1.2.0"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // UTC build timestamp
)

// Binaries installed with `go install module@version` carry no ldflags,
// but the toolchain records the module version. Prefer that over "dev".
func init() {
	if Version != "dev" {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			Version = v
		}
	}
}

// Template returns the cobra version template, so `tilebeat --version`
// prints the full build stamp rather than just the version string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
