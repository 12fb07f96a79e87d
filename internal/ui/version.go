package ui

// VersionInfo holds build information for display in the dashboard header
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

var versionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Version:   "dev",
}

// SetVersionInfo sets the build information injected by main
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}
