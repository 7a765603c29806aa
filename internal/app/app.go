// internal/app/app.go

// Package app wires the full assignment pipeline: read the roster workbook,
// normalize rows, allocate seats, checkpoint, export and publish.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"exam-seating/internal/checkpoint"
	"exam-seating/internal/common/config"
	"exam-seating/internal/common/database"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/common/metrics"
	"exam-seating/internal/common/observability"
	"exam-seating/internal/engine"
	"exam-seating/internal/export"
	"exam-seating/internal/ingest"
	"exam-seating/internal/models"
	"exam-seating/internal/publish"
	"exam-seating/internal/report"
	"exam-seating/internal/roomplan"
	"exam-seating/internal/roster"
)

// App runs one assignment cycle end to end.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	tracing *observability.Tracing
}

func New(cfg *config.Config, log logger.Logger, tracing *observability.Tracing) *App {
	return &App{cfg: cfg, logger: log, tracing: tracing}
}

// Run executes the pipeline and returns the finished report. Export and
// publish failures are logged but do not discard the allocation itself.
func (a *App) Run(ctx context.Context) (*report.Report, error) {
	runID := uuid.New().String()
	log := a.logger.WithFields(map[string]interface{}{"runID": runID})
	log.Info("assignment run starting", map[string]interface{}{
		"input": a.cfg.Input.File,
		"sheet": a.cfg.Input.SheetName,
	})

	records, err := a.loadRoster(ctx, log)
	if err != nil {
		return nil, err
	}

	rep, err := a.allocate(ctx, log, records)
	if err != nil {
		return nil, err
	}

	if a.cfg.Checkpoint.Enabled {
		if err := a.saveCheckpoint(ctx, rep); err != nil {
			return nil, err
		}
	}

	var failed []string
	if err := a.export(ctx, rep); err != nil {
		log.WithError(err).Error("export failed", nil)
		failed = append(failed, "export")
	}
	if err := a.publish(ctx, runID, rep); err != nil {
		log.WithError(err).Error("publish failed", nil)
		failed = append(failed, "publish")
	}
	if len(failed) > 0 {
		return rep, fmt.Errorf("assignment completed with failed stages: %v", failed)
	}

	log.Info("assignment run finished", map[string]interface{}{
		"programs": rep.ProgramCount(),
		"seats":    rep.SeatCount(),
	})
	return rep, nil
}

func (a *App) loadRoster(ctx context.Context, log logger.Logger) ([]models.ApplicantRecord, error) {
	_, span := a.tracing.Start(ctx, "roster.load")
	defer span.End()

	result, err := ingest.ReadFile(a.cfg.Input.File, a.cfg.Input.SheetName)
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		log.Warn("input row skipped", map[string]interface{}{
			"row":    w.Row,
			"reason": w.Message,
		})
	}

	normalizer := roster.NewNormalizer(a.cfg.Roster, log)
	records, summary := normalizer.Normalize(result.Rows)
	log.Info("roster normalized", map[string]interface{}{
		"read":    summary.RowsRead,
		"kept":    summary.Kept,
		"dropped": summary.Dropped(),
	})
	return records, nil
}

func (a *App) allocate(ctx context.Context, log logger.Logger, records []models.ApplicantRecord) (*report.Report, error) {
	_, span := a.tracing.Start(ctx, "engine.allocate")
	defer span.End()

	engineCfg := engine.Config{
		SeatsPerRoom:   a.cfg.Allocation.SeatsPerRoom,
		SortKey:        a.cfg.Allocation.SortKey,
		SortLocale:     a.cfg.Allocation.SortLocale,
		ExamIDPrefixes: a.cfg.Allocation.ExamIDPrefixes,
		ExamIDWidth:    a.cfg.Allocation.ExamIDWidth,
		SortPrograms:   a.cfg.Allocation.SortPrograms,
	}

	if a.cfg.Allocation.RoomPlanFile != "" {
		plan, err := roomplan.LoadFile(a.cfg.Allocation.RoomPlanFile)
		if err != nil {
			return nil, err
		}
		engineCfg.Scheme = roomplan.NewScheme(plan, a.cfg.Allocation.SeatsPerRoom)
	}

	if a.cfg.Checkpoint.Enabled {
		prior, err := a.loadCheckpoint(ctx)
		if err != nil {
			return nil, err
		}
		if len(prior) > 0 {
			log.Info("resuming from checkpoint", map[string]interface{}{"entries": len(prior)})
		}
		engineCfg.Prior = prior
	}

	start := time.Now()
	rep, err := engine.Allocate(records, engineCfg)
	if err != nil {
		return nil, err
	}
	metrics.AllocationDuration.Observe(time.Since(start).Seconds())
	for _, program := range rep.Programs() {
		metrics.RoomsOpened.WithLabelValues(program.ID()).Add(float64(program.RoomCount()))
		metrics.SeatsAssigned.WithLabelValues(program.ID()).Add(float64(program.SeatCount()))
	}
	return rep, nil
}

func (a *App) loadCheckpoint(ctx context.Context) ([]models.CheckpointEntry, error) {
	store, err := checkpoint.Open(a.cfg.Checkpoint.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

func (a *App) saveCheckpoint(ctx context.Context, rep *report.Report) error {
	_, span := a.tracing.Start(ctx, "checkpoint.save")
	defer span.End()

	store, err := checkpoint.Open(a.cfg.Checkpoint.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, rep)
}

func (a *App) export(ctx context.Context, rep *report.Report) error {
	_, span := a.tracing.Start(ctx, "export.write")
	defer span.End()

	if a.cfg.Output.ExcelPath != "" {
		writer := export.NewExcelWriter(a.cfg.Output.ExcelPath)
		if err := writer.Write(rep); err != nil {
			return err
		}
		a.logger.Info("workbook written", map[string]interface{}{"path": a.cfg.Output.ExcelPath})
	}
	if a.cfg.Output.PDFDir != "" {
		if err := os.MkdirAll(a.cfg.Output.PDFDir, 0o755); err != nil {
			return err
		}
		writer := export.NewPDFWriter(a.cfg.Output.PDFDir,
			a.cfg.Output.FontPath, a.cfg.Output.BoldFontPath, a.cfg.Output.ExamDates)
		if err := writer.Write(rep); err != nil {
			return err
		}
		a.logger.Info("room lists written", map[string]interface{}{"dir": a.cfg.Output.PDFDir})
	}
	return nil
}

func (a *App) publish(ctx context.Context, runID string, rep *report.Report) error {
	_, span := a.tracing.Start(ctx, "publish.push")
	defer span.End()

	if a.cfg.Publish.Postgres.Enabled {
		pg, err := database.NewPostgres(a.cfg.Publish.Postgres)
		if err != nil {
			return err
		}
		defer pg.Close()
		publisher := publish.NewPostgresPublisher(pg.DB, a.logger)
		if err := publisher.Publish(ctx, runID, rep); err != nil {
			return err
		}
	}
	if a.cfg.Publish.Redis.Enabled {
		rdb := database.NewRedis(a.cfg.Publish.Redis)
		defer rdb.Close()
		publisher := publish.NewRedisPublisher(rdb.Client, a.cfg.Publish.Redis.KeyPrefix, a.logger)
		if err := publisher.Publish(ctx, runID, rep); err != nil {
			return err
		}
	}
	return nil
}
