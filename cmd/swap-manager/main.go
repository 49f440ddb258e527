// cmd/swap-manager/main.go
package main

import "os"

// Overridden at release time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
