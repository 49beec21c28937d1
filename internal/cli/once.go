package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	vlog "github.com/futureCreator/pulse/internal/log"
	"github.com/futureCreator/pulse/internal/run"
	"github.com/futureCreator/pulse/internal/scheduler"
)

var onceOpts overrides

var onceCmd = &cobra.Command{
	Use:          "once",
	Short:        "Run a single cycle and exit",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(onceOpts)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := scheduler.New(a.graph, a.cfg.Interval(), a.cfg.Backoff(),
			scheduler.WithLogger(vlog.Logger()))
		if err != nil {
			return err
		}

		rec, ok := s.RunCycle(cmd.Context())
		if !ok {
			return cmd.Context().Err()
		}
		run.NewDisplay().Cycle(rec, 0)
		if !rec.OK() {
			return fmt.Errorf("cycle failed: %s", rec.Error)
		}
		return nil
	},
}

func init() {
	onceCmd.Flags().StringVarP(&onceOpts.pipeline, "pipeline", "p", "", "Pipeline to run (overrides config)")
}
