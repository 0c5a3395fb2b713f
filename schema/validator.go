// Package schema embeds the JSON schema for spoolview.yml and validates raw
// configuration documents against it.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/grovetools/spoolview/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed spoolview.schema.json
var embeddedSchema string

const schemaURL = "spoolview.schema.json"

// Validator checks decoded configuration against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(embeddedSchema)); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// NewValidator returns a validator over the embedded schema. The schema is
// compiled once per process.
func NewValidator() (*Validator, error) {
	s, err := compiled()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to compile embedded schema")
	}
	return &Validator{schema: s}, nil
}

// Validate checks data, which may be any value that marshals to a JSON
// object. Violations are returned as a CONFIG_INVALID error whose "violations"
// detail lists each failing location.
func (v *Validator) Validate(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration is not representable as JSON")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration is not representable as JSON")
	}

	err = v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}
	violations := violationsOf(verr, nil)
	return errors.ConfigInvalid("schema validation failed:\n" + strings.Join(violations, "\n")).
		WithDetail("violations", violations)
}

// violationsOf flattens the leaves of a validation error tree.
func violationsOf(err *jsonschema.ValidationError, out []string) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return append(out, fmt.Sprintf("- %s: %s", loc, err.Message))
	}
	for _, cause := range err.Causes {
		out = violationsOf(cause, out)
	}
	return out
}
