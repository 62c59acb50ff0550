package offline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

// DrainReport summarizes one reconciliation pass.
type DrainReport struct {
	Submitted int
	Rejected  int
	// Stopped is true when the server became unreachable mid-pass and the
	// remaining entries were left pending.
	Stopped bool
}

// Syncer replays pending entries one at a time, oldest first. Sequential
// replay keeps the server-side capacity checks honest: each submission sees
// the committed result of the previous one.
type Syncer struct {
	queue   Queue
	gateway BookingGateway
	clock   clock.Clock
	cron    *cron.Cron
}

func NewSyncer(queue Queue, gateway BookingGateway, clk clock.Clock) *Syncer {
	return &Syncer{
		queue:   queue,
		gateway: gateway,
		clock:   clk,
	}
}

func (s *Syncer) Drain(ctx context.Context) (DrainReport, error) {
	var report DrainReport

	pending, err := s.queue.ListPending(ctx)
	if err != nil {
		return report, err
	}

	for _, entry := range pending {
		if err := ctx.Err(); err != nil {
			report.Stopped = true
			return report, err
		}

		err := s.gateway.Submit(ctx, entry)
		switch {
		case err == nil:
			if err := s.queue.Remove(ctx, entry.ID); err != nil {
				return report, err
			}
			report.Submitted++
		case errors.Is(err, ErrUnreachable):
			// Connectivity is gone again; stay pending and stop the pass.
			slog.Warn("sync pass stopped, server unreachable", "entry_id", entry.ID, "error", err.Error())
			report.Stopped = true
			return report, nil
		case errors.Is(err, ErrRejected):
			entry.MarkSyncError(err.Error(), s.clock.Now())
			if err := s.queue.Update(ctx, entry); err != nil {
				return report, err
			}
			slog.Warn("offline booking rejected", "entry_id", entry.ID, "reason", entry.FailureReason)
			report.Rejected++
		default:
			return report, err
		}
	}

	return report, nil
}

// Start schedules periodic drains with the given cron spec (e.g. "@every 1m").
func (s *Syncer) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		report, err := s.Drain(ctx)
		if err != nil {
			slog.Error("scheduled drain failed", "error", err.Error())
			return
		}
		if report.Submitted > 0 || report.Rejected > 0 || report.Stopped {
			slog.Info("scheduled drain finished",
				"submitted", report.Submitted,
				"rejected", report.Rejected,
				"stopped", report.Stopped,
			)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

func (s *Syncer) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
