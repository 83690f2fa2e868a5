package zsshconf

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaCommand prints the JSON schema of the policy file format.
type SchemaCommand struct{}

// Validate implements the command interface; the schema command takes no
// positional arguments.
func (x *SchemaCommand) Validate(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: schema takes no arguments", ErrInvalidArguments)
	}
	return nil
}

// PolicySchema returns the JSON schema describing policy files.
func PolicySchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		// Every key is optional; absent keys keep their defaults.
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&PolicyInput{})
	schema.Title = "zsshconf policy"
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return b, nil
}

// OutputSchema writes the policy schema through the configured output
// function, like a single rendered job.
func OutputSchema() error {
	b, err := PolicySchema()
	if err != nil {
		return err
	}
	results := make(chan []byte, 1)
	results <- b
	close(results)
	if config.outputResults == nil {
		SetOutputFunc(OutputResultsFileFunc(config.OutputFileName))
	}
	return config.outputResults(results)
}
