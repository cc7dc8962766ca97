// Package jobs содержит фоновые задачи по расписанию.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/service"
)

// statsTimeout ограничивает один прогон отчёта.
const statsTimeout = 30 * time.Second

// StatsSource отдаёт сводку по заявкам.
type StatsSource interface {
	Stats(ctx context.Context) (service.WithdrawalStats, error)
}

// StatsReporter периодически пишет сводку по заявкам в лог.
type StatsReporter struct {
	source StatsSource
	log    logrus.FieldLogger
	cron   *cron.Cron
}

// NewStatsReporter планирует отчёт по cron-выражению schedule (время UTC).
func NewStatsReporter(source StatsSource, schedule string, log logrus.FieldLogger) (*StatsReporter, error) {
	r := &StatsReporter{
		source: source,
		log:    log,
		cron:   cron.New(cron.WithLocation(time.UTC)),
	}

	if _, err := r.cron.AddFunc(schedule, r.Report); err != nil {
		return nil, fmt.Errorf("jobs: расписание %q: %w", schedule, err)
	}
	return r, nil
}

// Start запускает планировщик в фоне.
func (r *StatsReporter) Start() {
	r.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего прогона.
func (r *StatsReporter) Stop() {
	<-r.cron.Stop().Done()
}

// Report считает сводку один раз.
func (r *StatsReporter) Report() {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()

	stats, err := r.source.Stats(ctx)
	if err != nil {
		r.log.WithError(err).Error("не удалось посчитать статистику заявок")
		return
	}

	r.log.WithFields(logrus.Fields{
		"total_count":      stats.TotalCount,
		"pending_amount":   stats.PendingAmount,
		"completed_amount": stats.CompletedAmount,
	}).Info("статистика заявок на вывод")
}
