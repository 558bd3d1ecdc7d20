package main

import (
	"jfrogext/cmd"

	"github.com/joho/godotenv"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A .env file is optional; JFROGEXT_* overrides may live there.
	_ = godotenv.Load()

	cmd.SetVersion(version)
	cmd.Execute()
}
