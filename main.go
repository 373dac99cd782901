package main

import (
	"anyonedrive/cmd"
)

// version will be set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
