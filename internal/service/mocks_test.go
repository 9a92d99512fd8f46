package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) List(ctx context.Context) ([]*model.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Client), args.Error(1)
}

func (m *MockClientStore) Recent(ctx context.Context, limit int) ([]*model.ClientSummary, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*model.ClientSummary), args.Error(1)
}

func (m *MockClientStore) DuplicatesByPhone(ctx context.Context, phone string) ([]*model.ClientSummary, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).([]*model.ClientSummary), args.Error(1)
}

func (m *MockClientStore) Update(ctx context.Context, client *model.Client) (*model.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingStore) CreateClientWithBooking(ctx context.Context, client *model.Client, booking *model.Booking) error {
	args := m.Called(ctx, client, booking)
	return args.Error(0)
}

func (m *MockBookingStore) GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockBookingStore) List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, serviceFilter)
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingStore) ListByService(ctx context.Context) ([]*model.BookingDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingStore) ListBetween(ctx context.Context, from, to time.Time) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingStore) ListByClient(ctx context.Context, clientID int64) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingStore) Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingStore) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingStore) PopularServices(ctx context.Context, limit int) ([]model.ServiceCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.ServiceCount), args.Error(1)
}

func (m *MockBookingStore) CountsByServiceAndDate(ctx context.Context) ([]model.ServiceDateCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ServiceDateCount), args.Error(1)
}

func (m *MockBookingStore) CountByServiceBetween(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) ListApproved(ctx context.Context) ([]*model.Comment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentStore) ExistsForClient(ctx context.Context, clientID int64) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAvailability(ctx context.Context, day string) (map[string]model.Availability, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.Availability), args.Error(1)
}

func (m *MockCache) SetAvailability(ctx context.Context, day string, availability map[string]model.Availability) error {
	args := m.Called(ctx, day, availability)
	return args.Error(0)
}

func (m *MockCache) InvalidateAvailability(ctx context.Context, day string) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockCache) InvalidateAllAvailability(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Announce(event model.BookingEvent) {
	m.Called(event)
}
