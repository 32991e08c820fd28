package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/embercoffee/contact-service/internal/domain"
	"github.com/embercoffee/contact-service/internal/events"
	"github.com/embercoffee/contact-service/internal/repository"
	apperrors "github.com/embercoffee/contact-service/pkg/util"
)

// Stats aggregates dashboard counts. Each field comes from an independent
// query; a record created between two sub-queries may show in one count but
// not another.
type Stats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

// DailyCount is one calendar-day bucket.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AdminService provides the read/mutate/aggregate views over contacts.
type AdminService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminService {
	return &AdminService{contacts: contacts, dispatcher: dispatcher, logger: logger}
}

// List returns all contacts, newest first.
func (s *AdminService) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		s.logger.Error("contact list failed", zap.Error(err))
		return nil, apperrors.NewPersistenceFailed(err)
	}
	return contacts, nil
}

// UpdateStatus sets the handling status. An absent id is treated as
// success; the record being already gone is indistinguishable from the
// update having raced a delete.
func (s *AdminService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError(MsgCheckInput, map[string]string{
			"status": "status must be pending or completed",
		})
	}

	err := s.contacts.UpdateStatus(ctx, id, status)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("status update failed", zap.String("contact_id", id), zap.Error(err))
		return apperrors.NewPersistenceFailed(err)
	}
	if err == nil {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventContactStatusChanged,
			ContactID: id,
			Payload:   events.ContactStatusChangedPayload{NewStatus: status},
		})
	}
	return nil
}

// Delete removes a contact. Deleting an already-gone id succeeds.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	err := s.contacts.Delete(ctx, id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Error("contact delete failed", zap.String("contact_id", id), zap.Error(err))
		return apperrors.NewPersistenceFailed(err)
	}
	if err == nil {
		s.publishEvent(ctx, events.Event{Type: events.EventContactDeleted, ContactID: id})
	}
	return nil
}

// GetStats runs the four dashboard count queries.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.contacts.Count(ctx, repository.CountFilter{})
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	todayStart := startOfDay(time.Now())
	today, err := s.contacts.Count(ctx, repository.CountFilter{CreatedFrom: &todayStart})
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	pendingStatus := domain.ContactStatusPending
	pending, err := s.contacts.Count(ctx, repository.CountFilter{Status: &pendingStatus})
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	completedStatus := domain.ContactStatusCompleted
	completed, err := s.contacts.Count(ctx, repository.CountFilter{Status: &completedStatus})
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	return &Stats{Total: total, Today: today, Pending: pending, Completed: completed}, nil
}

// DailyCounts buckets the last days calendar days of submissions, today
// inclusive, in the service's local timezone. Every day in the window gets
// a bucket even when its count is zero; output is ascending by date.
func (s *AdminService) DailyCounts(ctx context.Context, days int) ([]DailyCount, error) {
	if days <= 0 {
		days = 7
	}

	todayStart := startOfDay(time.Now())
	windowStart := todayStart.AddDate(0, 0, -(days - 1))
	windowEnd := todayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	createdAts, err := s.contacts.CreatedAtInRange(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	buckets := make(map[string]int64, days)
	result := make([]DailyCount, 0, days)
	for i := 0; i < days; i++ {
		key := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		buckets[key] = 0
		result = append(result, DailyCount{Date: key})
	}

	for _, createdAt := range createdAts {
		key := createdAt.In(time.Local).Format("2006-01-02")
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}

	for i := range result {
		result[i].Count = buckets[result[i].Date]
	}
	return result, nil
}

func (s *AdminService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
