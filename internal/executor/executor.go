package executor

import (
	"context"
	"time"
)

// Executor sends prompt messages to a model and returns its text. It may
// fail with a transient or permanent error; it never retries on its own.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Result, error)
}

// Role identifies the author of a prompt message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single prompt message.
type Message struct {
	Role    Role
	Content string
}

// Request carries all inputs for one model invocation.
type Request struct {
	Step     string // step name, for logging
	Model    string // empty selects the provider default
	Messages []Message
}

// Result holds the output of one model invocation.
type Result struct {
	Output    string
	Model     string
	Cost      float64
	Duration  time.Duration
	TokensIn  int
	TokensOut int
}
