package pipeline

import (
	"context"
	"slices"

	"github.com/futureCreator/pulse/internal/executor"
	vlog "github.com/futureCreator/pulse/internal/log"
	"github.com/futureCreator/pulse/internal/types"
)

// Compile turns a declarative pipeline into a Graph whose steps call the
// named executors. Unknown executors, missing prompt templates and inputs
// that no earlier step writes are reported as *ConfigError, as is a final
// step that does not write the result field.
func Compile(p *Pipeline, executors map[string]executor.Executor, prompts map[string]string) (*Graph, error) {
	if p == nil {
		return nil, configErrorf("no pipeline definition")
	}

	written := []string{}
	steps := make([]NamedStep, 0, len(p.Steps))
	for _, def := range p.Steps {
		if def.Executor == "" {
			return nil, configErrorf("step %q has no executor", def.Name)
		}
		exec, ok := executors[def.Executor]
		if !ok {
			return nil, configErrorf("step %q: unknown executor %q", def.Name, def.Executor)
		}
		systemPrompt := ""
		if def.PromptTemplate != "" {
			systemPrompt, ok = prompts[def.PromptTemplate]
			if !ok {
				return nil, configErrorf("step %q: prompt template %q not found", def.Name, def.PromptTemplate)
			}
		}
		for _, in := range def.Input {
			if !slices.Contains(written, in) {
				return nil, configErrorf("step %q reads %q before any step writes it", def.Name, in)
			}
		}
		written = append(written, def.OutputField())

		steps = append(steps, NamedStep{
			Name: def.Name,
			Step: executorStep(def, exec, systemPrompt),
		})
	}

	if n := len(p.Steps); n > 0 && p.Steps[n-1].OutputField() != types.DefaultOutput {
		last := p.Steps[n-1]
		return nil, configErrorf("last step %q must write %q, not %q", last.Name, types.DefaultOutput, last.OutputField())
	}

	return Build(steps)
}

func executorStep(def types.Step, exec executor.Executor, systemPrompt string) Step {
	return func(ctx context.Context, s State) (Update, error) {
		msgs, err := buildMessages(def, systemPrompt, s)
		if err != nil {
			return nil, err
		}

		result, err := exec.Execute(ctx, &executor.Request{
			Step:     def.Name,
			Model:    def.Model,
			Messages: msgs,
		})
		if err != nil {
			return nil, err
		}

		vlog.Info("step completed",
			"step", def.Name,
			"model", result.Model,
			"tokens_in", result.TokensIn,
			"tokens_out", result.TokensOut,
			"cost", result.Cost,
			"duration", result.Duration)

		return Update{def.OutputField(): result.Output}, nil
	}
}
