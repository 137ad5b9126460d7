// pkg/config/schema_test.go
package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSchema(t *testing.T) {
	schema, err := Schema()
	if err != nil {
		t.Fatalf("Schema() failed: %v", err)
	}

	if schema.Title != "go-physics2d Simulation Config" {
		t.Errorf("Title = %q, expected the config title", schema.Title)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("schema does not marshal: %v", err)
	}

	rendered := string(data)
	for _, field := range []string{"gravity", "grid", "timeStep", "bodies", "cellSize"} {
		if !strings.Contains(rendered, field) {
			t.Errorf("schema missing field %q", field)
		}
	}
}
