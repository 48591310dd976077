// Package config loads and validates the YAML configuration for a
// benchmark run.
package config

import (
	"encoding/json"
	"os"

	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/version"
	"github.com/MohanLi/tickbench/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// BenchConfig configures a benchmark invocation.
type BenchConfig struct {
	EngineVersion string   `yaml:"engine_version" json:"engine_version" jsonschema:"title=Engine Version,description=Engine version this config targets; major and minor must match the running engine. Use main to skip the check"`
	DataPath      string   `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=CSV file of ticks to benchmark against,required" validate:"required"`
	Strategies    []string `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,description=Strategy names to run; empty runs every registered strategy" validate:"omitempty,dive,required"`
	Sizes         []int    `yaml:"sizes" json:"sizes" jsonschema:"title=Input Sizes,description=Tick counts to replay per strategy" validate:"omitempty,dive,gt=0"`
	Repeats       int      `yaml:"repeats" json:"repeats" jsonschema:"title=Repeats,description=Timed runs per cell; the fastest is kept,minimum=1" validate:"omitempty,gte=1"`
	WindowSize    int      `yaml:"window_size" json:"window_size" jsonschema:"title=Window Size,description=Window length for the windowed strategy,minimum=1" validate:"omitempty,gt=0"`
	ProfileSize   int      `yaml:"profile_size" json:"profile_size" jsonschema:"title=Profile Size,description=Input size to capture a CPU profile at; 0 disables profiling,minimum=0" validate:"omitempty,gte=0"`
	OutputDir     string   `yaml:"output_dir" json:"output_dir" jsonschema:"title=Output Directory,description=Directory for the report and plots"`
	ResultsDB     string   `yaml:"results_db" json:"results_db" jsonschema:"title=Results Database,description=DuckDB file where results are stored; empty keeps results in memory"`
}

// DefaultConfig returns a BenchConfig with the default measurement grid.
func DefaultConfig() BenchConfig {
	return BenchConfig{
		EngineVersion: version.GetVersion(),
		DataPath:      "data/ticks.csv",
		Strategies:    nil,
		Sizes:         []int{1000, 10000, 100000},
		Repeats:       3,
		WindowSize:    strategy.DefaultWindowSize,
		ProfileSize:   100000,
		OutputDir:     "results",
		ResultsDB:     "results/bench.db",
	}
}

// Validate validates the BenchConfig fields and the engine version gate.
func (c *BenchConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid bench config", err)
	}

	if c.EngineVersion != "" {
		if err := version.CheckVersionCompatibility(version.GetVersion(), c.EngineVersion); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidVersion, "config targets an incompatible engine version", err)
		}
	}

	return nil
}

// Parse decodes YAML over the defaults and validates the result, so omitted
// fields keep their default values.
func Parse(raw []byte) (*BenchConfig, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to parse config YAML", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*BenchConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read config %s", path)
	}

	return Parse(raw)
}

// GenerateSchema generates a JSON schema for the BenchConfig.
func (c *BenchConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "tickbench-config"
	schema.Description = "Configuration schema for the tickbench benchmark engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BenchConfig.
func (c *BenchConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
