package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/metrics"
	"github.com/bankfusion/bankfusion/internal/schedule"
	"github.com/bankfusion/bankfusion/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	var addr string
	var runNow bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP batch trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			orch := newOrchestrator(cfg, log, metrics.NewPipeline(reg))

			srv := server.New(orch, server.Options{
				Root:           cfg.Input.Root,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Gatherer:       reg,
				Log:            log,
			})

			batchJob := func(ctx context.Context) {
				if _, err := srv.ProcessAll(ctx); err != nil {
					log.Error().Err(err).Msg("background batch failed")
				}
			}
			startup := func() { batchJob(cmd.Context()) }

			if cfg.Server.Schedule != "" {
				sched, err := schedule.New(cfg.Server.Schedule, batchJob, log)
				if err != nil {
					return err
				}
				sched.Start()
				defer func() { <-sched.Stop().Done() }()
				startup = sched.RunNow
			}
			if runNow {
				go startup()
			}

			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "process the input root once at startup")

	return cmd
}
