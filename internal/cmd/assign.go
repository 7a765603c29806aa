package cmd

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"exam-seating/internal/app"
	"exam-seating/internal/common/config"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/common/observability"
)

// NewAssignCmd creates the assign command
func NewAssignCmd() *cobra.Command {
	var (
		inputFile   string
		sheetName   string
		planFile    string
		trace       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign exam rooms and seats",
		Long: `Reads the applicant roster workbook, allocates rooms and seat numbers
per program, then writes the checkpoint, exports and publishes the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if inputFile != "" {
				cfg.Input.File = inputFile
			}
			if sheetName != "" {
				cfg.Input.SheetName = sheetName
			}
			if planFile != "" {
				cfg.Allocation.RoomPlanFile = planFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

			var traceOut io.Writer
			if trace {
				traceOut = os.Stderr
			}
			tracing, err := observability.New(cfg.App.Name, traceOut)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			defer tracing.Shutdown(ctx)

			if metricsAddr != "" {
				go func() {
					if err := http.ListenAndServe(metricsAddr, promhttp.Handler()); err != nil {
						log.WithError(err).Warn("metrics endpoint stopped", nil)
					}
				}()
			}

			_, err = app.New(cfg, log, tracing).Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "", "Applicant roster workbook (.xlsx)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name to read")
	cmd.Flags().StringVar(&planFile, "plan", "", "Room plan JSON file")
	cmd.Flags().BoolVar(&trace, "trace", false, "Emit trace spans to stderr")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose /metrics on this address while the run lasts")

	return cmd
}
