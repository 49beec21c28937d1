// Package assets provides embedded prompt templates, default pipeline
// definitions and the starter config file.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed prompts/*.md
var promptsFS embed.FS

//go:embed pipelines/*.yaml
var pipelinesFS embed.FS

//go:embed templates/*
var templatesFS embed.FS

// overrideDir is the project and user directory checked before embedded files.
const overrideDir = ".pulse"

// LoadPrompt returns the content of a prompt template by name.
// Override lookup order: project .pulse/prompts/ > user ~/.pulse/prompts/ > embedded.
func LoadPrompt(name string) (string, error) {
	return loadWithOverride("prompts", name+".md", promptsFS)
}

// LoadPipeline returns the content of a pipeline YAML by name.
// Override lookup order: project .pulse/pipelines/ > user ~/.pulse/pipelines/ > embedded.
func LoadPipeline(name string) ([]byte, error) {
	content, err := loadWithOverride("pipelines", name+".yaml", pipelinesFS)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// LoadTemplate returns an embedded template file by name.
func LoadTemplate(name string) (string, error) {
	data, err := templatesFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	return string(data), nil
}

// AllPrompts returns every prompt template, applying overrides per name.
func AllPrompts() (map[string]string, error) {
	embedded, err := readAll(promptsFS, "prompts", ".md")
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(embedded))
	for name := range embedded {
		content, err := LoadPrompt(name)
		if err != nil {
			return nil, err
		}
		result[name] = content
	}
	for _, dir := range overrideDirs("prompts") {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || filepath.Ext(name) != ".md" {
				continue
			}
			key := name[:len(name)-len(".md")]
			if _, ok := result[key]; ok {
				continue
			}
			if content, err := LoadPrompt(key); err == nil {
				result[key] = content
			}
		}
	}
	return result, nil
}

// overrideDirs lists override directories in priority order.
func overrideDirs(dir string) []string {
	dirs := []string{filepath.Join(overrideDir, dir)}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, overrideDir, dir))
	}
	return dirs
}

func loadWithOverride(dir, filename string, embedded embed.FS) (string, error) {
	for _, d := range overrideDirs(dir) {
		if data, err := os.ReadFile(filepath.Join(d, filename)); err == nil {
			return string(data), nil
		}
	}

	data, err := embedded.ReadFile(path.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("%s %q not found", dir, filename)
	}
	return string(data), nil
}

func readAll(fsys embed.FS, dir, ext string) (map[string]string, error) {
	result := map[string]string{}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ext {
			continue
		}
		data, err := fsys.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		key := name[:len(name)-len(ext)]
		result[key] = string(data)
	}
	return result, nil
}
