package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotelease/backend/internal/service"
)

// Scheduler периодически прогоняет сверку доступности номеров. Она чинит
// флаги, разошедшиеся с таблицей бронирований после сбоя синхронизации.
type Scheduler struct {
	bookingService service.BookingService
	interval       time.Duration
}

func NewScheduler(bookingService service.BookingService, interval time.Duration) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.Info("Availability reconciler started")

	for {
		select {
		case <-ticker.C:
			corrected, err := s.bookingService.ReconcileAvailability(ctx)
			if err != nil {
				logrus.Errorf("Availability reconciliation failed: %v", err)
				continue
			}
			if corrected > 0 {
				logrus.Warnf("Availability reconciliation corrected %d rooms", corrected)
			}
		case <-ctx.Done():
			logrus.Info("Availability reconciler stopped")
			return
		}
	}
}
