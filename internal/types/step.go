// Package types holds shared data structures used across packages.
package types

// Step is the declarative definition of a single pipeline step.
type Step struct {
	Name           string   `yaml:"name"`
	Executor       string   `yaml:"executor"`
	Model          string   `yaml:"model,omitempty"`
	PromptTemplate string   `yaml:"prompt_template,omitempty"`
	Message        string   `yaml:"message,omitempty"`
	Input          []string `yaml:"input,omitempty"`
	Output         string   `yaml:"output,omitempty"`
}

// DefaultOutput is the state field a step writes when Output is empty.
const DefaultOutput = "result"

// OutputField returns the state field this step writes.
func (s Step) OutputField() string {
	if s.Output == "" {
		return DefaultOutput
	}
	return s.Output
}
