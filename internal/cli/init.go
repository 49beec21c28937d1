package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/futureCreator/pulse/internal/assets"
	"github.com/futureCreator/pulse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default ~/.pulse/config.yaml",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home dir: %w", err)
	}
	path, created, err := writeDefaultConfig(filepath.Join(home, config.Dir))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(w, "Config already exists: %s\n", path)
		return nil
	}
	fmt.Fprintf(w, "Created %s\n", path)
	fmt.Fprintln(w, "Set OPENAI_API_KEY in the environment or a .env file for API access.")
	return nil
}

// writeDefaultConfig writes the starter config into dir unless one exists.
func writeDefaultConfig(dir string) (path string, created bool, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("creating config dir: %w", err)
	}
	path = filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	content, err := assets.LoadTemplate("config.yaml")
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", false, fmt.Errorf("writing config: %w", err)
	}
	return path, true, nil
}
