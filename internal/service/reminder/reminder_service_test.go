package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsonstech/fieldservice/internal/domain/models"
)

// fakeCustomerStore filters records by the requested warranty range the way
// the mongo query does, inclusive at both ends.
type fakeCustomerStore struct {
	records []models.CustomerRecord
	err     error
	queries [][2]time.Time
}

func (f *fakeCustomerStore) FindWarrantyDueBetween(_ context.Context, from, to time.Time) ([]models.CustomerRecord, error) {
	f.queries = append(f.queries, [2]time.Time{from, to})
	if f.err != nil {
		return nil, f.err
	}

	var matched []models.CustomerRecord
	for _, r := range f.records {
		upto := r.TractorInfo.WarrantyUpto
		if !upto.Before(from) && !upto.After(to) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

type fakeMailer struct {
	sent    []models.ServiceReminder
	failFor map[string]error
}

func (f *fakeMailer) SendServiceDueReminder(_ context.Context, reminder models.ServiceReminder) error {
	if err, ok := f.failFor[reminder.CustomerEmail]; ok {
		return err
	}
	f.sent = append(f.sent, reminder)
	return nil
}

func customerRecord(name, email string, warrantyUpto time.Time) models.CustomerRecord {
	return models.CustomerRecord{
		TractorInfo: models.TractorInfo{
			SerialNo:     "TR-" + name,
			Model:        "575 DI",
			WarrantyUpto: warrantyUpto,
		},
		ServiceInfo: models.ServiceInfo{
			CustomerName: name,
			Email:        email,
		},
	}
}

func newTestService(store *fakeCustomerStore, mailer *fakeMailer, now time.Time) *Service {
	svc := NewService(store, mailer, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckServiceDueDates_WindowBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	store := &fakeCustomerStore{records: []models.CustomerRecord{
		customerRecord("inside", "inside@example.com", now.AddDate(0, 0, 3)),
		customerRecord("beyond", "beyond@example.com", now.AddDate(0, 0, 10)),
		customerRecord("expired", "expired@example.com", now.AddDate(0, 0, -1)),
		customerRecord("boundary", "boundary@example.com", now.AddDate(0, 0, 7)),
	}}
	mailer := &fakeMailer{}

	err := newTestService(store, mailer, now).CheckServiceDueDates(context.Background())
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "inside@example.com", mailer.sent[0].CustomerEmail)
	assert.Equal(t, "boundary@example.com", mailer.sent[1].CustomerEmail)

	// The window passed to the store preserves the time of day.
	require.Len(t, store.queries, 1)
	assert.Equal(t, now, store.queries[0][0])
	assert.Equal(t, now.AddDate(0, 0, 7), store.queries[0][1])
}

func TestCheckServiceDueDates_ReminderPayload(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 5)

	store := &fakeCustomerStore{records: []models.CustomerRecord{
		customerRecord("Ramesh", "ramesh@example.com", due),
	}}
	mailer := &fakeMailer{}

	err := newTestService(store, mailer, now).CheckServiceDueDates(context.Background())
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	reminder := mailer.sent[0]
	assert.Equal(t, "Ramesh", reminder.CustomerName)
	assert.Equal(t, "ramesh@example.com", reminder.CustomerEmail)
	assert.Equal(t, due, reminder.DueDate)
	assert.Equal(t, "TR-Ramesh", reminder.Vehicle.SerialNo)
	assert.Equal(t, "575 DI", reminder.Vehicle.Model)
}

func TestCheckServiceDueDates_SendFailureDoesNotAbortLoop(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	var records []models.CustomerRecord
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, customerRecord(name, name+"@example.com", now.AddDate(0, 0, 2)))
	}

	store := &fakeCustomerStore{records: records}
	mailer := &fakeMailer{failFor: map[string]error{
		"c@example.com": errors.New("smtp relay rejected recipient"),
	}}

	err := newTestService(store, mailer, now).CheckServiceDueDates(context.Background())
	require.NoError(t, err)

	// Records after the failing one are still processed.
	require.Len(t, mailer.sent, 4)
	assert.Equal(t, "d@example.com", mailer.sent[2].CustomerEmail)
	assert.Equal(t, "e@example.com", mailer.sent[3].CustomerEmail)
}

func TestCheckServiceDueDates_StoreFailureAbortsSweep(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	store := &fakeCustomerStore{err: errors.New("server selection timeout")}
	mailer := &fakeMailer{}

	err := newTestService(store, mailer, now).CheckServiceDueDates(context.Background())
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestCheckServiceDueDates_RepeatRunsRenotify(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	store := &fakeCustomerStore{records: []models.CustomerRecord{
		customerRecord("a", "a@example.com", now.AddDate(0, 0, 4)),
		customerRecord("b", "b@example.com", now.AddDate(0, 0, 6)),
	}}
	mailer := &fakeMailer{}
	svc := newTestService(store, mailer, now)

	require.NoError(t, svc.CheckServiceDueDates(context.Background()))
	require.NoError(t, svc.CheckServiceDueDates(context.Background()))

	// No suppression state: an unchanged data set yields the same matches on
	// every run.
	assert.Len(t, mailer.sent, 4)
}

func TestCheckServiceDueDates_EmptyWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	store := &fakeCustomerStore{records: []models.CustomerRecord{
		customerRecord("far", "far@example.com", now.AddDate(1, 0, 0)),
	}}
	mailer := &fakeMailer{}

	err := newTestService(store, mailer, now).CheckServiceDueDates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}
