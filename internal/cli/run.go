package cli

import (
	"github.com/spf13/cobra"

	vlog "github.com/futureCreator/pulse/internal/log"
	"github.com/futureCreator/pulse/internal/run"
	"github.com/futureCreator/pulse/internal/scheduler"
)

var runOpts overrides

var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the pipeline forever on a fixed interval",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(runOpts)
		if err != nil {
			return err
		}
		defer a.Close()

		disp := run.NewDisplay()
		disp.Header(a.pipeline.Name, a.graph.Len())

		s, err := scheduler.New(a.graph, a.cfg.Interval(), a.cfg.Backoff(),
			scheduler.WithReporter(disp.Cycle),
			scheduler.WithLogger(vlog.Logger()))
		if err != nil {
			return err
		}
		return s.Start(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOpts.pipeline, "pipeline", "p", "", "Pipeline to run (overrides config)")
	runCmd.Flags().DurationVar(&runOpts.interval, "interval", 0, "Sleep after a successful cycle (overrides config)")
	runCmd.Flags().DurationVar(&runOpts.backoff, "backoff", 0, "Sleep after a failed cycle (overrides config)")
}
