// Package version reports what build of the API is running
package version

import (
	"runtime"
	"runtime/debug"
)

// Service is the name the API reports in meta endpoints and logs
const Service = "mealmax-api"

// overridden at link time:
// -ldflags "-X mealmax/internal/core/version.version=v0.1.0 -X mealmax/internal/core/version.commit=abcd"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service   string `json:"service"    example:"mealmax-api"`
	Version   string `json:"version"    example:"v0.1.0"`
	Commit    string `json:"commit"     example:"3f2c1ab"`
	Date      string `json:"date"       example:"2026-10-19T12:00:00Z"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// Info returns the link-time values, falling back to the vcs stamp go build embeds
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}

var readBuildInfo = debug.ReadBuildInfo
