package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/futureCreator/pulse/internal/assets"
	"github.com/futureCreator/pulse/internal/config"
	"github.com/futureCreator/pulse/internal/executor"
	vlog "github.com/futureCreator/pulse/internal/log"
	"github.com/futureCreator/pulse/internal/pipeline"
)

// overrides holds command-line values that take precedence over config.
type overrides struct {
	pipeline string
	interval time.Duration
	backoff  time.Duration
}

func (o overrides) apply(cfg *config.Config) {
	if o.pipeline != "" {
		cfg.Pipeline = o.pipeline
	}
	if o.interval != 0 {
		cfg.Schedule.Interval = o.interval.String()
	}
	if o.backoff != 0 {
		cfg.Schedule.Backoff = o.backoff.String()
	}
}

// agent is everything a command needs to run cycles.
type agent struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	graph    *pipeline.Graph
	logFile  io.Closer
}

func (a *agent) Close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// setup loads config, initializes logging and compiles the pipeline. Every
// error it returns is fatal: none of them can be fixed by retrying.
func setup(o overrides) (*agent, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &agent{cfg: cfg}
	var logWriter io.Writer
	if cfg.LogFile {
		if f := openLogFile(); f != nil {
			a.logFile = f
			logWriter = f
		}
	}
	vlog.Init(cfg.LogLevel, cfg.LogFormat, logWriter)

	ppl, err := loadPipeline(cfg.Pipeline)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading pipeline %q: %w", cfg.Pipeline, err)
	}

	prompts, err := assets.AllPrompts()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading prompts: %w", err)
	}

	g, err := pipeline.Compile(ppl, buildExecutors(cfg), prompts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.pipeline = ppl
	a.graph = g
	vlog.Debug("pipeline compiled", "pipeline", ppl.Name, "steps", g.Names())
	return a, nil
}

func loadPipeline(name string) (*pipeline.Pipeline, error) {
	// Try filesystem first (project/user overrides)
	ppl, err := pipeline.LoadPipeline(name)
	if err == nil {
		return ppl, nil
	}
	// Fall back to embedded
	data, err := assets.LoadPipeline(name)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q not found", name)
	}
	return pipeline.Parse(data)
}

func buildExecutors(cfg *config.Config) map[string]executor.Executor {
	return map[string]executor.Executor{
		"api": executor.NewAPIExecutor(cfg, nil),
	}
}

func openLogFile() *os.File {
	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(config.Dir, "pulse.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
