package protocol

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema describes every message the generation stream may carry.
// Unknown fields are allowed so the backend can add metadata freely.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status"],
  "properties": {
    "status":    {"type": "string"},
    "details":   {"type": ["string", "null"]},
    "markdown":  {"type": "string"},
    "file_path": {"type": ["string", "null"]}
  },
  "allOf": [
    {
      "if":   {"properties": {"status": {"const": "complete"}}},
      "then": {"required": ["markdown"]}
    },
    {
      "if":   {"properties": {"status": {"const": "error"}}},
      "then": {"required": ["details"]}
    }
  ]
}`

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewStringLoader(payloadSchema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// Validate checks raw JSON against the payload schema. It returns the list of
// violations, or an error when the data is not JSON at all.
func Validate(data []byte) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling payload schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
