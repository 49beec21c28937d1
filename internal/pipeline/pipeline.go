package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/futureCreator/pulse/internal/types"
)

// Pipeline is the declarative, named sequence of steps loaded from YAML.
type Pipeline struct {
	Name  string       `yaml:"name"`
	Steps []types.Step `yaml:"steps"`
}

// Parse decodes a pipeline from YAML bytes.
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing pipeline: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("pipeline must have a name")
	}
	return &p, nil
}

// ParseFile reads and parses a pipeline YAML file.
func ParseFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file %s: %w", path, err)
	}
	return Parse(data)
}

// LoadPipeline resolves a pipeline by name from project or user overrides.
// Embedded defaults are resolved by the caller through the assets package.
func LoadPipeline(name string) (*Pipeline, error) {
	projectPath := filepath.Join(".pulse", "pipelines", name+".yaml")
	if _, err := os.Stat(projectPath); err == nil {
		return ParseFile(projectPath)
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".pulse", "pipelines", name+".yaml")
		if _, err := os.Stat(userPath); err == nil {
			return ParseFile(userPath)
		}
	}

	return nil, fmt.Errorf("pipeline %q not found", name)
}
