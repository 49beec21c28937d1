// Package run describes the outcome of a single scheduler cycle. Records are
// ephemeral: they are reported once and then discarded.
package run

import (
	"context"
	"errors"
	"time"

	"github.com/futureCreator/pulse/internal/pipeline"
)

// Status is the outcome of a cycle.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Error kinds reported on failed cycles.
const (
	KindStepExecution = "step_execution"
	KindTimeout       = "timeout"
	KindInternal      = "internal"
)

// Record is the result of one cycle.
type Record struct {
	Cycle     int           `json:"cycle"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Status    Status        `json:"status"`
	Result    string        `json:"result,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
	Step      string        `json:"step,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// OK reports whether the cycle succeeded.
func (r Record) OK() bool { return r.Status == StatusSuccess }

// Success builds a record for a completed run.
func Success(cycle int, startedAt time.Time, d time.Duration, result string) Record {
	return Record{
		Cycle:     cycle,
		StartedAt: startedAt,
		Duration:  d,
		Status:    StatusSuccess,
		Result:    result,
	}
}

// Failure builds a record for a failed run.
func Failure(cycle int, startedAt time.Time, d time.Duration, err error) Record {
	r := Record{
		Cycle:     cycle,
		StartedAt: startedAt,
		Duration:  d,
		Status:    StatusFailure,
		ErrorKind: Classify(err),
		Error:     err.Error(),
	}
	var se *pipeline.StepError
	if errors.As(err, &se) {
		r.Step = se.Step
	}
	return r
}

// timeouter is implemented by net and net/http errors, including
// http.Client timeouts.
type timeouter interface {
	Timeout() bool
}

// Classify maps an error returned by a graph run to an error kind.
func Classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var te timeouter
	if errors.As(err, &te) && te.Timeout() {
		return KindTimeout
	}
	var se *pipeline.StepError
	if errors.As(err, &se) {
		return KindStepExecution
	}
	return KindInternal
}
