package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/version"
	"github.com/MohanLi/tickbench/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Equal(version.GetVersion(), config.EngineVersion)
	suite.Equal("data/ticks.csv", config.DataPath)
	suite.Nil(config.Strategies)
	suite.Equal([]int{1000, 10000, 100000}, config.Sizes)
	suite.Equal(3, config.Repeats)
	suite.Equal(strategy.DefaultWindowSize, config.WindowSize)
	suite.Equal(100000, config.ProfileSize)
	suite.Equal("results", config.OutputDir)
	suite.Equal("results/bench.db", config.ResultsDB)
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestParseOverridesOnlyGivenFields() {
	raw := []byte(`
data_path: testdata/small.csv
sizes: [100, 200]
repeats: 1
`)

	config, err := Parse(raw)
	suite.Require().NoError(err)

	suite.Equal("testdata/small.csv", config.DataPath)
	suite.Equal([]int{100, 200}, config.Sizes)
	suite.Equal(1, config.Repeats)

	// Omitted fields keep their defaults.
	suite.Equal(strategy.DefaultWindowSize, config.WindowSize)
	suite.Equal("results", config.OutputDir)
	suite.Equal(100000, config.ProfileSize)
}

func (suite *ConfigTestSuite) TestParseInvalidYAML() {
	_, err := Parse([]byte("data_path: [unclosed"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeParseFailed))
}

func (suite *ConfigTestSuite) TestValidateMissingDataPath() {
	config := DefaultConfig()
	config.DataPath = ""

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateNonPositiveSize() {
	config := DefaultConfig()
	config.Sizes = []int{1000, 0}

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateNegativeRepeats() {
	config := DefaultConfig()
	config.Repeats = -1

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateNegativeWindowSize() {
	config := DefaultConfig()
	config.WindowSize = -5

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateVersionGate() {
	config := DefaultConfig()

	config.EngineVersion = "main"
	suite.NoError(config.Validate())

	config.EngineVersion = version.GetVersion()
	suite.NoError(config.Validate())

	config.EngineVersion = "v99.0.0"
	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func (suite *ConfigTestSuite) TestLoadFile() {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "bench.yaml")

	raw := []byte(`
data_path: testdata/small.csv
strategies:
  - cumulative_average
window_size: 10
`)
	suite.Require().NoError(os.WriteFile(path, raw, 0644))

	config, err := LoadFile(path)
	suite.Require().NoError(err)
	suite.Equal("testdata/small.csv", config.DataPath)
	suite.Equal([]string{"cumulative_average"}, config.Strategies)
	suite.Equal(10, config.WindowSize)
}

func (suite *ConfigTestSuite) TestLoadFileMissing() {
	_, err := LoadFile(filepath.Join(suite.T().TempDir(), "absent.yaml"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	config := &BenchConfig{}
	schema, err := config.GenerateSchema()

	suite.NoError(err)
	suite.NotNil(schema)
	suite.Equal("tickbench-config", schema.Title)
	suite.Equal("Configuration schema for the tickbench benchmark engine", schema.Description)
	suite.Equal("http://json-schema.org/draft-07/schema#", schema.Version)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := &BenchConfig{}
	schemaJSON, err := config.GenerateSchemaJSON()

	suite.NoError(err)
	suite.NotEmpty(schemaJSON)

	var decoded map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &decoded))
	suite.Contains(schemaJSON, "data_path")
	suite.Contains(schemaJSON, "window_size")
}
