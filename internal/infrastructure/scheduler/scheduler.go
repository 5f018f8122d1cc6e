// Package scheduler ejecuta tareas programadas con cron.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// Reconciler es lo que necesita la tarea nocturna de conciliación.
type Reconciler interface {
	Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error)
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	timeout    time.Duration
	log        *logger.Logger
}

// New crea el scheduler. Usa el parser estándar de 5 campos en hora local.
func New(reconciler Reconciler, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		reconciler: reconciler,
		timeout:    5 * time.Minute,
		log:        logger.OrNop(log),
	}
}

// Start registra la conciliación con la expresión cron dada (ej. "0 3 * * *") y arranca el cron.
// Una expresión vacía no registra nada.
func (s *Scheduler) Start(expr string) error {
	if expr != "" {
		if _, err := s.cron.AddFunc(expr, s.runReconcile); err != nil {
			return err
		}
		s.log.Info().Str("cron", expr).Msg("conciliación de kardex programada")
	}
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	res, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("conciliación de kardex fallida")
		return
	}
	ev := s.log.Info()
	if len(res.Discrepancies) > 0 {
		ev = s.log.Error()
	}
	ev.Int("products", res.Products).
		Int("discrepancies", len(res.Discrepancies)).
		Dur("elapsed", time.Since(start)).
		Msg("conciliación de kardex terminada")
}
