package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed scenario.schema.json
var schemaData []byte

var (
	scenarioSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchema compiles the embedded scenario schema once.
func compileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal scenario schema: %w", err)
			return
		}
		if err := compiler.AddResource("scenario.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add scenario schema resource: %w", err)
			return
		}
		scenarioSchema, compileErr = compiler.Compile("scenario.schema.json")
	})
	return scenarioSchema, compileErr
}

// validateDocument checks a decoded scenario document against the schema.
// The document is round-tripped through JSON so YAML-typed values are
// normalized before validation.
func validateDocument(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize scenario document: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("normalize scenario document: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("scenario document is not valid: %w", err)
	}
	return nil
}
