// pkg/config/schema.go
package config

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema reflects a JSON schema for SimulationConfig so editors and
// external tools can validate configuration documents before handing
// them to LoadConfig.
func Schema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.ReflectFromType(reflect.TypeOf(SimulationConfig{}))
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect simulation config schema")
	}
	schema.Title = "go-physics2d Simulation Config"
	schema.Description = "World gravity, broad-phase grid dimensions, time step and initial body set."

	return schema, nil
}
