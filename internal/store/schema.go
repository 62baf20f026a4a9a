package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/tasks.schema.json
var tasksSchemaSource string

//go:embed schema/settings.schema.json
var settingsSchemaSource string

var (
	tasksSchema    = jsonschema.MustCompileString("tasks.schema.json", tasksSchemaSource)
	settingsSchema = jsonschema.MustCompileString("settings.schema.json", settingsSchemaSource)
)

// decodeValidated parses data, checks it against schema and then decodes it
// into v. Any failure is a shape problem and is reported as CorruptDataError.
func decodeValidated(path string, data []byte, schema *jsonschema.Schema, v any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &CorruptDataError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return &CorruptDataError{Path: path, Err: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptDataError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
