package main

import (
	"github.com/ecoskun/newsdeck/cmd"
	"github.com/joho/godotenv"
)

// Populated by goreleaser via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	_ = godotenv.Load()
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
