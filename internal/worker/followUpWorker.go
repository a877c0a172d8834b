package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotelease/backend/internal/service"
)

// FollowUpWorker периодически ищет активные бронирования без назначенного
// номера и напоминает о них персоналу.
type FollowUpWorker struct {
	bookingService service.BookingService
	notifier       service.ConciergeNotifier
	interval       time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func NewFollowUpWorker(bookingService service.BookingService, notifier service.ConciergeNotifier, interval time.Duration) *FollowUpWorker {
	return &FollowUpWorker{
		bookingService: bookingService,
		notifier:       notifier,
		interval:       interval,
		stop:           make(chan struct{}),
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Follow-up worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Follow-up worker stopped")
			return
		case <-w.stop:
			logrus.Info("Follow-up worker stopped")
			return
		case <-ticker.C:
			w.checkUnassignedBookings(ctx)
		}
	}
}

// checkUnassignedBookings собирает бронирования без номера и шлет сводку
func (w *FollowUpWorker) checkUnassignedBookings(ctx context.Context) {
	bookings, err := w.bookingService.GetUnassignedBookings(ctx)
	if err != nil {
		logrus.Errorf("Failed to get unassigned bookings: %v", err)
		return
	}

	if len(bookings) == 0 {
		logrus.Debug("No unassigned bookings found")
		return
	}

	logrus.Infof("Found %d unassigned bookings awaiting a room", len(bookings))

	if w.notifier == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Бронирования без номера: %d\n", len(bookings))
	for _, b := range bookings {
		select {
		case <-ctx.Done():
			logrus.Info("Follow-up check interrupted by context cancellation")
			return
		default:
		}

		fmt.Fprintf(&sb, "%s | %s | %s | %d ночей\n",
			b.Reference, b.FullName, b.Category, b.Nights)
	}

	if err := w.notifier.Notify(sb.String()); err != nil {
		logrus.Errorf("Failed to send follow-up summary: %v", err)
		return
	}

	logrus.Infof("Follow-up summary sent for %d bookings", len(bookings))
}

// Stop останавливает воркер при graceful shutdown; повторный вызов безопасен
func (w *FollowUpWorker) Stop() {
	w.stopOnce.Do(func() {
		logrus.Info("Follow-up worker stopping...")
		close(w.stop)
	})
}
