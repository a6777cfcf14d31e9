// cmd/featcmp/main.go
package main

import (
	cmd "github.com/mwiater/featcmp/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the featcmp CLI by delegating to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
