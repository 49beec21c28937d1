package pipeline

import (
	"context"

	vlog "github.com/futureCreator/pulse/internal/log"
)

// Step maps the current state to a partial update. Steps hold no state
// across invocations.
type Step func(ctx context.Context, s State) (Update, error)

// NamedStep pairs a step with its unique name.
type NamedStep struct {
	Name string
	Step Step
}

// Graph is an immutable linear chain of steps. The first step is the entry,
// the last is the terminal. A Graph holds no run state and is reusable.
type Graph struct {
	steps []NamedStep
}

// Build validates steps and returns a graph. It fails with *ConfigError when
// the list is empty, a name is blank or repeated, or a step is nil.
func Build(steps []NamedStep) (*Graph, error) {
	if len(steps) == 0 {
		return nil, configErrorf("at least one step is required")
	}
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, configErrorf("step %d has no name", i)
		}
		if seen[s.Name] {
			return nil, configErrorf("duplicate step name %q", s.Name)
		}
		if s.Step == nil {
			return nil, configErrorf("step %q has no implementation", s.Name)
		}
		seen[s.Name] = true
	}
	cp := make([]NamedStep, len(steps))
	copy(cp, steps)
	return &Graph{steps: cp}, nil
}

// Entry returns the name of the first step.
func (g *Graph) Entry() string { return g.steps[0].Name }

// Terminal returns the name of the last step.
func (g *Graph) Terminal() string { return g.steps[len(g.steps)-1].Name }

// Len returns the number of steps.
func (g *Graph) Len() int { return len(g.steps) }

// Names returns step names in execution order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.steps))
	for i, s := range g.steps {
		names[i] = s.Name
	}
	return names
}

// Run folds the steps left-to-right starting from initial. The caller's
// state is never modified. The first failing step aborts the run with a
// *StepError and no state.
func (g *Graph) Run(ctx context.Context, initial State) (State, error) {
	state := initial.Clone()

	for _, s := range g.steps {
		if err := ctx.Err(); err != nil {
			return State{}, &StepError{Step: s.Name, Err: err}
		}

		vlog.Debug("running step", "step", s.Name)
		update, err := s.Step(ctx, state.Clone())
		if err != nil {
			return State{}, &StepError{Step: s.Name, Err: err}
		}
		state = state.merge(update)
	}

	return state, nil
}
