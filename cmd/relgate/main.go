package main

import (
	_ "relgate/internal/checks/builtin"
	"relgate/internal/cli"
	_ "relgate/internal/fetcher/providers"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
