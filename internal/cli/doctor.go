package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/futureCreator/pulse/internal/assets"
	"github.com/futureCreator/pulse/internal/config"
	"github.com/futureCreator/pulse/internal/cost"
	"github.com/futureCreator/pulse/internal/pipeline"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check pulse configuration and credentials",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if !diagnose(w) {
		fmt.Fprintln(w, "\nSome checks failed. Fix the issues above before running pulse.")
		return nil
	}
	fmt.Fprintln(w, "\nAll checks passed. pulse is ready.")
	return nil
}

// diagnose prints one line per check and reports whether all passed.
func diagnose(w io.Writer) bool {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Fprintf(w, "✅ %s\n", label)
		} else {
			fmt.Fprintf(w, "❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	cfg, cfgErr := config.Load(configPath)
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr != nil {
		return false
	}

	validateErr := cfg.Validate()
	check("config valid", validateErr == nil, fmt.Sprintf("%v", validateErr))

	keyEnv := cfg.Provider.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	check(keyEnv+" set", cfg.APIKey() != "", "set it in the environment or in .env")

	ppl, err := loadPipeline(cfg.Pipeline)
	check(fmt.Sprintf("pipeline %q found", cfg.Pipeline), err == nil, fmt.Sprintf("%v", err))
	if err == nil {
		prompts, perr := assets.AllPrompts()
		if perr == nil {
			_, perr = pipeline.Compile(ppl, buildExecutors(cfg), prompts)
		}
		check("pipeline compiles", perr == nil, fmt.Sprintf("%v", perr))
	}

	if !cost.Known(cfg.Provider.Model) {
		fmt.Fprintf(w, "⚠️  no pricing for model %q — cycle cost will be logged as 0\n", cfg.Provider.Model)
	}

	return allOK
}
