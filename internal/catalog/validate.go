package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://gopherlings-catalog.json"

// ValidationError reports every problem found in a catalog.
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid catalog: %v", e.Err)
	}
	return fmt.Sprintf("invalid catalog:\n  %s", strings.Join(e.Problems, "\n  "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonValue(catalogSchema)
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateDocument checks a decoded YAML document against the catalog schema.
func validateDocument(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}

	parsed, err := jsonValue(doc)
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("not representable as JSON: %w", err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// jsonValue converts v to the generic form produced by encoding/json,
// which is what the schema validator expects.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// validateExercises performs the checks the schema cannot express.
func validateExercises(exercises []ExerciseInfo) error {
	var problems []string

	seen := make(map[string]bool, len(exercises))
	for _, e := range exercises {
		if seen[e.Name] {
			problems = append(problems, fmt.Sprintf("duplicate exercise name: %q", e.Name))
		}
		seen[e.Name] = true
		if !e.Mode.Valid() {
			problems = append(problems, fmt.Sprintf("exercise %q has unknown mode %q", e.Name, e.Mode))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
