package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	yml := `
name: test
steps:
  - name: Analyst
    executor: api
    model: deepseek-chat
    prompt_template: analyst
    message: Analyze current ETH market sentiment.
    output: analysis
  - name: Summary
    executor: api
    prompt_template: summary
    input: [analysis]
`
	p, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("expected name 'test', got %q", p.Name)
	}
	if len(p.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(p.Steps))
	}
	if p.Steps[0].OutputField() != "analysis" {
		t.Errorf("expected output 'analysis', got %q", p.Steps[0].OutputField())
	}
	if p.Steps[1].OutputField() != "result" {
		t.Errorf("expected default output 'result', got %q", p.Steps[1].OutputField())
	}
	if p.Steps[1].Input[0] != "analysis" {
		t.Errorf("expected input 'analysis', got %v", p.Steps[1].Input)
	}
}

func TestParseNoName(t *testing.T) {
	yml := `steps: []`
	_, err := Parse([]byte(yml))
	if err == nil {
		t.Error("expected error for pipeline without name")
	}
}

func TestLoadPipelineProjectOverride(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	os.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll(filepath.Join(".pulse", "pipelines"), 0755); err != nil {
		t.Fatal(err)
	}
	yml := "name: custom\nsteps:\n  - name: a\n    executor: api\n"
	if err := os.WriteFile(filepath.Join(".pulse", "pipelines", "custom.yaml"), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPipeline("custom")
	if err != nil {
		t.Fatalf("LoadPipeline() error: %v", err)
	}
	if p.Name != "custom" {
		t.Errorf("expected 'custom', got %q", p.Name)
	}

	if _, err := LoadPipeline("absent"); err == nil {
		t.Error("expected error for unknown pipeline")
	}
}
