package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFilePerm = 0o644

// GenerateSchemaFile writes a JSON schema for the configuration next to the
// config file, so editors can validate and complete it.
func GenerateSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	schemaFile := filepath.Join(configDir, "config.schema.json")

	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/quellbrowser/quell/config.schema.json"
	schema.Title = "Quell Configuration"
	schema.Description = "Configuration schema for quell, a keyboard-driven browser"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(schemaFile, data, schemaFilePerm); err != nil {
		return "", fmt.Errorf("write schema file: %w", err)
	}
	return schemaFile, nil
}
