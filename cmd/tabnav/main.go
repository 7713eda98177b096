// Command tabnav drives the tab navigation state of the financial dashboard.
package main

import (
	"runtime"

	"github.com/bnema/tabnav/internal/cli/cmd"
	"github.com/bnema/tabnav/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
