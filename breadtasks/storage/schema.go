package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const stateSchemaURL = "breadtasks_state.schema.json"

// stateSchema describes a migrated state file. Legacy fields such as
// priority are rejected because migration must have removed them.
const stateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "tasks", "categories", "nextId", "currentCategory"],
  "properties": {
    "version": {"type": "string"},
    "lastSaved": {"type": "string"},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "text", "completed", "createdAt", "category", "lastModified"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "integer", "minimum": 0},
          "text": {"type": "string", "minLength": 1},
          "completed": {"type": "boolean"},
          "createdAt": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "lastModified": {"type": "string", "minLength": 1}
        }
      }
    },
    "categories": {
      "type": "array",
      "minItems": 2,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "nextId": {"type": "integer", "minimum": 1},
    "currentCategory": {"type": "string", "minLength": 1}
  }
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func loadSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(stateSchemaURL, strings.NewReader(stateSchema)); err != nil {
			compiledSchemaErr = fmt.Errorf("add state schema: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(stateSchemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// SchemaError reports a state that does not satisfy the state schema
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("state does not match schema: %v", e.Err)
}

// Unwrap returns the underlying validation error
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Validate checks a migrated state against the state schema
func Validate(s *StateFile) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal state for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}
