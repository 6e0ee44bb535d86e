package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/wrenware/staroids/internal/tuning"
)

func main() {
	var outPath string
	var defaultsPath string
	var checkPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.StringVar(&defaultsPath, "defaults", "", "path to write the default catalog")
	flag.StringVar(&checkPath, "check", "", "catalog file to load and validate")
	flag.Parse()

	if outPath == "" && defaultsPath == "" && checkPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -out, -defaults, or -check")
		os.Exit(1)
	}

	if outPath != "" {
		if err := writeJSON(outPath, buildSchema()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}

	if defaultsPath != "" {
		if err := writeJSON(defaultsPath, tuning.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write default catalog: %v\n", err)
			os.Exit(1)
		}
	}

	if checkPath != "" {
		if _, err := tuning.Load(checkPath); err != nil {
			fmt.Fprintf(os.Stderr, "catalog invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: ok\n", checkPath)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(tuning.Catalog))
	schema.Title = "Staroids Saucer Tuning"
	schema.Description = "Validates designer-edited personality tuning catalogs"
	return schema
}

// writeJSON marshals v and writes it atomically, temp file then rename.
func writeJSON(outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace %s: %w", outPath, err)
	}

	return nil
}
