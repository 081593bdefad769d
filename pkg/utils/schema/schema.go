// Package schema generates the JSON schema of the covgap config file.
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/covgap/pkg/configs"
)

// GenConfigSchema generates the JSON schema for the application configuration and writes it to out.
// Editors can point `# yaml-language-server: $schema=...` at the result for .covgap.yaml.
func GenConfigSchema(out io.Writer) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	configSchema := reflector.Reflect(configs.Config{})
	configSchema.Title = "covgap configuration"

	schemaJSON, err := json.MarshalIndent(configSchema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config schema: %w", err)
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}
