package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// OutputFormat 输出格式类型
type OutputFormat string

const (
	// FormatText represents the human readable report.
	FormatText OutputFormat = "text"
	// FormatTable represents the report rendered as a terminal table.
	FormatTable OutputFormat = "table"
	// FormatJSON represents the JSON output format.
	FormatJSON OutputFormat = "json"
	// FormatYAML represents the YAML output format.
	FormatYAML OutputFormat = "yaml"
	// FormatTOML represents the TOML output format.
	FormatTOML OutputFormat = "toml"
)

// ValidFormats 返回所有有效的输出格式
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatTable), string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// ParseOutputFormat 解析输出格式字符串，空字符串视为 text
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "text", "txt":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// Structured 是否为机器可读格式
func (f OutputFormat) Structured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// OutputData 根据指定格式输出数据，只处理机器可读格式
func OutputData(data any, format OutputFormat, out io.Writer) error {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close YAML encoder: %w", err)
		}
		_, err := out.Write(buf.Bytes())
		return err

	case FormatJSON:
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err

	case FormatTOML:
		tomlData, err := toml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		_, err = out.Write(tomlData)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
