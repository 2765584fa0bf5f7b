package app

import "fmt"

// Version, Commit and BuildTime are stamped at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/flashmind/internal/app.Version=1.0.0" ./cmd/flashmind
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build stamp for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
