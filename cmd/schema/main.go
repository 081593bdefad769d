// Package main writes docs/config_schema.json for the covgap config file.
package main

import (
	"os"
	"path/filepath"

	"github.com/yeisme/covgap/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/covgap/cmd/schema
func main() {
	docs := filepath.Join("..", "..", "docs")
	if err := os.MkdirAll(docs, 0755); err != nil {
		panic(err)
	}

	configSchemaFile, err := os.Create(filepath.Join(docs, "config_schema.json"))
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = configSchemaFile.Close()
	}()

	if err := schema.GenConfigSchema(configSchemaFile); err != nil {
		panic(err)
	}
}
