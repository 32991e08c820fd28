package service

import (
	"context"
	"time"

	"github.com/embercoffee/contact-service/internal/domain"
	"github.com/embercoffee/contact-service/internal/repository"
)

// mockContactRepo implements repository.ContactRepository with overridable
// func fields.
type mockContactRepo struct {
	createFunc       func(ctx context.Context, contact *domain.Contact) error
	listFunc         func(ctx context.Context) ([]domain.Contact, error)
	updateStatusFunc func(ctx context.Context, id string, status domain.ContactStatus) error
	deleteFunc       func(ctx context.Context, id string) error
	countFunc        func(ctx context.Context, filter repository.CountFilter) (int64, error)
	rangeFunc        func(ctx context.Context, from, to time.Time) ([]time.Time, error)

	createCalls int
}

func (m *mockContactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	contact.ID = "contact-1"
	contact.Status = domain.ContactStatusPending
	contact.CreatedAt = time.Now()
	return nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepo) Count(ctx context.Context, filter repository.CountFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockContactRepo) CreatedAtInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if m.rangeFunc != nil {
		return m.rangeFunc(ctx, from, to)
	}
	return nil, nil
}

// mockAttachmentStore implements storage.AttachmentStore.
type mockAttachmentStore struct {
	uploadFunc  func(ctx context.Context, data []byte, contentType, ext string) (string, error)
	uploadCalls int
}

func (m *mockAttachmentStore) Upload(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	m.uploadCalls++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, data, contentType, ext)
	}
	return "https://cdn.example.com/contacts/1-abc." + ext, nil
}
