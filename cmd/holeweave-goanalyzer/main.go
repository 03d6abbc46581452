// Command holeweave-goanalyzer is the Go-language analyzer subprocess: it
// speaks the langserver wire protocol over stdin/stdout, backed by
// internal/goanalyzer.
package main

import (
	"fmt"
	"os"

	"github.com/oxhq/holeweave/internal/goanalyzer"
	"github.com/oxhq/holeweave/langserver"
)

func main() {
	srv := langserver.NewServer(goanalyzer.New())
	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "holeweave-goanalyzer: %v\n", err)
		os.Exit(1)
	}
}
