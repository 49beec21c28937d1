package pipeline

import (
	"fmt"
	"strings"

	"github.com/futureCreator/pulse/internal/executor"
	"github.com/futureCreator/pulse/internal/types"
)

// buildMessages assembles the prompt for an executor step: the system
// prompt, then every state input as its own user message, then the step
// instruction followed by the fields it reads from earlier steps.
func buildMessages(step types.Step, systemPrompt string, s State) ([]executor.Message, error) {
	var msgs []executor.Message
	if systemPrompt != "" {
		msgs = append(msgs, executor.Message{Role: executor.RoleSystem, Content: systemPrompt})
	}
	for _, in := range s.Inputs {
		msgs = append(msgs, executor.Message{Role: executor.RoleUser, Content: in})
	}

	var sb strings.Builder
	if step.Message != "" {
		sb.WriteString(step.Message)
	}
	for _, field := range step.Input {
		content, ok := s.Fields[field]
		if !ok {
			return nil, fmt.Errorf("input field %q not set by any earlier step", field)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n%s", field, content)
	}
	if sb.Len() > 0 {
		msgs = append(msgs, executor.Message{Role: executor.RoleUser, Content: sb.String()})
	}

	if len(msgs) == 0 || msgs[len(msgs)-1].Role != executor.RoleUser {
		return nil, fmt.Errorf("step %q produced no user message", step.Name)
	}
	return msgs, nil
}
