package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// runConfigSchema is the structural contract for run configuration
// files, checked before semantic validation so typos (wrong types,
// unknown keys) get a precise error.
const runConfigSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": { "type": "string" },
    "rate": { "type": "number", "minimum": 0 },
    "rpm": { "type": "number", "minimum": 0 },
    "tick": { "type": "string" },
    "maxWorkers": { "type": "integer", "minimum": 0 },
    "maxBurst": { "type": "number", "minimum": 0 },
    "workload": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "file": { "type": "string" },
        "format": { "enum": ["lines", "json"] },
        "path": { "type": "string" }
      }
    }
  }
}`

var (
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
	compileSchemaOnce sync.Once
)

func schema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("runconfig.json", strings.NewReader(runConfigSchema)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("runconfig.json")
	})
	return compiledSchema, compiledSchemaErr
}

// validateSchema checks raw YAML/JSON config bytes against the embedded
// schema.
//
// The document is round-tripped through encoding/json first so the
// schema validator sees JSON-typed values regardless of which format the
// file used.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalizing config: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		return fmt.Errorf("normalizing config: %w", err)
	}

	s, err := schema()
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	if err := s.Validate(normalized); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
