package notekeeper

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the library and CLI.
var Version = strings.TrimSpace(version)

// UserAgent is sent by the remote adapter when the facade builds it.
func UserAgent() string {
	return "notekeeper/" + Version
}
