package scheduler

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Job - периодическая задача. Ошибка только логируется, следующий запуск идет по расписанию.
type Job func(ctx context.Context) error

// Scheduler запускает фоновые задачи по cron-расписанию.
type Scheduler struct {
	cron       *cron.Cron
	logger     port.LoggerPort
	jobTimeout time.Duration
}

func NewScheduler(logger port.LoggerPort, jobTimeout time.Duration) *Scheduler {
	schedLogger := logger.WithFields(port.Fields{"component": "Scheduler"})
	cl := cronLogger{log: schedLogger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			// паника в задаче не роняет процесс, долгий запуск не накладывается на следующий
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:     schedLogger,
		jobTimeout: jobTimeout,
	}
}

// cronLogger отдает внутренние сообщения cron в наш логгер.
type cronLogger struct {
	log port.LoggerPort
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, pairs(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, err, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) port.Fields {
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}

// AddJob регистрирует задачу. schedule - стандартное cron-выражение или дескриптор вида "@every 15m".
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q for job %s: %w", schedule, name, err)
	}
	s.logger.Info("Job scheduled", port.Fields{"job": name, "schedule": schedule})
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	jobLogger := s.logger.WithFields(port.Fields{"job": name, "trace_id": uuid.NewString()})

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()
	ctx = contextkeys.ContextWithLogger(ctx, jobLogger)

	start := time.Now()
	if err := job(ctx); err != nil {
		jobLogger.Error("Scheduled job failed", err, port.Fields{"duration": time.Since(start).String()})
		return
	}
	jobLogger.Debug("Scheduled job finished", port.Fields{"duration": time.Since(start).String()})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
