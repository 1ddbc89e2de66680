package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/domain/models"
	"github.com/arsonstech/fieldservice/pkg/clients/mail"
)

// dueWindowDays is how far ahead the sweep looks for expiring warranties.
const dueWindowDays = 7

// CustomerStore is the slice of the record store the sweep reads from.
type CustomerStore interface {
	FindWarrantyDueBetween(ctx context.Context, from, to time.Time) ([]models.CustomerRecord, error)
}

// Service runs the warranty due-date sweep: it selects customer records whose
// warranty expires within the next seven days and emails one reminder per
// record. Records are never marked as notified, so a record stays eligible on
// every daily run until its warranty date passes.
type Service struct {
	customers CustomerStore
	mailer    mail.Mailer
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new reminder service instance.
func NewService(customers CustomerStore, mailer mail.Mailer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		customers: customers,
		mailer:    mailer,
		now:       time.Now,
		logger:    logger,
	}
}

// CheckServiceDueDates performs one sweep. A store failure aborts the whole
// run; an individual send failure is logged and the loop continues.
func (s *Service) CheckServiceDueDates(ctx context.Context) error {
	now := s.now()
	windowEnd := now.AddDate(0, 0, dueWindowDays)

	records, err := s.customers.FindWarrantyDueBetween(ctx, now, windowEnd)
	if err != nil {
		return fmt.Errorf("query due warranties: %w", err)
	}

	var sent, failed int
	for _, record := range records {
		reminder := models.ServiceReminder{
			CustomerName:  record.ServiceInfo.CustomerName,
			CustomerEmail: record.ServiceInfo.Email,
			DueDate:       record.TractorInfo.WarrantyUpto,
			Vehicle: models.VehicleDetails{
				SerialNo: record.TractorInfo.SerialNo,
				Model:    record.TractorInfo.Model,
			},
		}

		if err := s.mailer.SendServiceDueReminder(ctx, reminder); err != nil {
			failed++
			s.logger.Error("failed sending service due reminder",
				zap.String("email", record.ServiceInfo.Email),
				zap.Time("warranty_upto", record.TractorInfo.WarrantyUpto),
				zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("service due sweep completed",
		zap.Int("processed", len(records)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
		zap.Time("window_start", now),
		zap.Time("window_end", windowEnd))

	return nil
}
