// Command contract prints the API route table with request and response
// shapes as JSON, for consumers that cannot import package contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hszk-dev/monostack/internal/api/handler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	out := flag.String("o", "", "write to file instead of stdout")
	flag.Parse()

	// Handlers are never invoked; only their types are described.
	reg := handler.NewRegistry(handler.NewHealthHandler(time.Time{}), handler.NewUserHandler(nil))
	if err := reg.Err(); err != nil {
		return fmt.Errorf("invalid route table: %w", err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reg.Describe()); err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	return nil
}
