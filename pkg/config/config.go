// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/opd-ai/go-physics2d/pkg/physics"
)

// SimulationConfig describes a complete simulation setup: the gravity
// vector, the broad-phase grid dimensions, the fixed time step a game
// loop should advance by, and the initial body set.
type SimulationConfig struct {
	Gravity  GravityConfig `json:"gravity" jsonschema:"description=Uniform acceleration applied to every awake dynamic body"`
	Grid     GridConfig    `json:"grid" jsonschema:"description=Uniform broad-phase grid dimensions,required"`
	TimeStep float64       `json:"timeStep" jsonschema:"description=Fixed step size in seconds the consumer loop should advance by"`
	Bodies   []BodyConfig  `json:"bodies,omitempty" jsonschema:"description=Initial body set registered with the world in order"`
}

// GravityConfig is the world gravity vector
type GravityConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GridConfig contains the spatial grid dimensions. The grid covers
// [0, cellSize*width) x [0, cellSize*height) and cannot be resized after
// construction.
type GridConfig struct {
	CellSize float64 `json:"cellSize" jsonschema:"description=Edge length of one grid cell in world units,required"`
	Width    int     `json:"width" jsonschema:"description=Number of cells along the x axis,required"`
	Height   int     `json:"height" jsonschema:"description=Number of cells along the y axis,required"`
}

// BodyConfig contains the initial state of one body
type BodyConfig struct {
	ID          int64   `json:"id" jsonschema:"description=Stable unique identifier,required"`
	Mass        float64 `json:"mass" jsonschema:"description=Body mass; must be positive for dynamic bodies"`
	Radius      float64 `json:"radius" jsonschema:"description=Circle shape radius,required"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VelocityX   float64 `json:"velocityX,omitempty"`
	VelocityY   float64 `json:"velocityY,omitempty"`
	Friction    float64 `json:"friction,omitempty"`
	Restitution float64 `json:"restitution,omitempty"`
	LinearDrag  float64 `json:"linearDrag,omitempty"`
	Static      bool    `json:"static,omitempty"`
	Sensor      bool    `json:"sensor,omitempty"`
}

// LoadConfig loads a simulation configuration from a JSON file
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimulationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration: standard
// gravity, a 100x100-unit world partitioned into 10-unit cells, and a
// 60 Hz step.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Gravity:  GravityConfig{X: 0, Y: -9.8},
		Grid:     GridConfig{CellSize: 10, Width: 10, Height: 10},
		TimeStep: 1.0 / 60.0,
	}
}

// LoadConfigFromEnv returns the default configuration with any
// PHYSICS2D_* environment overrides applied. Malformed values are
// rejected rather than ignored.
func LoadConfigFromEnv() (*SimulationConfig, error) {
	config := DefaultConfig()

	var err error
	if config.Gravity.X, err = getEnvFloat("PHYSICS2D_GRAVITY_X", config.Gravity.X); err != nil {
		return nil, err
	}
	if config.Gravity.Y, err = getEnvFloat("PHYSICS2D_GRAVITY_Y", config.Gravity.Y); err != nil {
		return nil, err
	}
	if config.Grid.CellSize, err = getEnvFloat("PHYSICS2D_CELL_SIZE", config.Grid.CellSize); err != nil {
		return nil, err
	}
	if config.Grid.Width, err = getEnvInt("PHYSICS2D_GRID_WIDTH", config.Grid.Width); err != nil {
		return nil, err
	}
	if config.Grid.Height, err = getEnvInt("PHYSICS2D_GRID_HEIGHT", config.Grid.Height); err != nil {
		return nil, err
	}
	if config.TimeStep, err = getEnvFloat("PHYSICS2D_TIME_STEP", config.TimeStep); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the core would silently
// misbehave on: non-positive grid dimensions and duplicate body IDs. The
// core itself stays permissive; validation is opt-in at the config layer.
func (c *SimulationConfig) Validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("grid cellSize must be positive, got %v", c.Grid.CellSize)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	seen := make(map[int64]bool, len(c.Bodies))
	for _, body := range c.Bodies {
		if seen[body.ID] {
			return fmt.Errorf("duplicate body id %d", body.ID)
		}
		seen[body.ID] = true
	}
	return nil
}

// BuildWorld constructs a grid, a world and the configured body set,
// registered in config order. This is the one-call consumer entry point;
// the returned world is ready for Step.
func BuildWorld(config *SimulationConfig) (*physics.World, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	grid := physics.NewSpatialGrid(config.Grid.CellSize, config.Grid.Width, config.Grid.Height)
	world := physics.NewWorld(grid)
	world.Gravity = physics.Vector2D{X: config.Gravity.X, Y: config.Gravity.Y}

	for _, bc := range config.Bodies {
		body := physics.NewPhysicsBody(physics.BodyID(bc.ID), bc.Mass, physics.NewCircle(bc.Radius))
		body.Position = physics.Vector2D{X: bc.X, Y: bc.Y}
		body.Velocity = physics.Vector2D{X: bc.VelocityX, Y: bc.VelocityY}
		body.Friction = bc.Friction
		body.Restitution = bc.Restitution
		body.LinearDrag = bc.LinearDrag
		body.Static = bc.Static
		body.Sensor = bc.Sensor
		world.AddBody(body)
	}

	return world, nil
}

// getEnvFloat reads a float64 environment variable with a fallback
func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return value, nil
}

// getEnvInt reads an int environment variable with a fallback
func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return value, nil
}
