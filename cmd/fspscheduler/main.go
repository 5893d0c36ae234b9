// File: main.go
// Role: process entry point. Grounded on
// KhryptorGraphics-OllamaMax/ollama-distributed/cmd/ollamacron/main.go's
// "build a cobra root command, Execute it, exit on error" shape, scoped
// down from that repo's long-running multi-subcommand node to this one's
// single load-solve-report run.
package main

import "os"

func main() {
	os.Exit(Execute())
}
