package models

import "fmt"

const unknownBuildValue = "N/A"

// AppBuildInfo is the linker-injected build metadata of a binary
// (-ldflags "-X main.buildVersion=...").
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo fills values the linker did not set with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return unknownBuildValue
		}
		return s
	}
	return AppBuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// String is the startup banner.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", a.Version, a.Date, a.Commit)
}
