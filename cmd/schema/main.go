// Command schema writes the JSON schema of the nl2rss configuration file.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/nl2rss/nl2rss/pkg/config"
)

func main() {
	schema, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("failed to generate schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file %s: %v", outputPath, err)
	}

	fmt.Printf("config schema written to %s\n", outputPath)
}
