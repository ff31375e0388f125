package version

import "runtime"

// Set at build time:
//
//	go build -ldflags "-X github.com/MrSnakeDoc/startpage/internal/version.Version=v0.1.0 ..."
var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version() // go version
)
