package api

import (
	"context"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Register(ctx context.Context, in service.RegisterInput) (*model.Client, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Login(ctx context.Context, email, password string) (*model.Client, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) CreateWithPlaceholder(ctx context.Context, firstName, lastName, phone string) (*model.Client, error) {
	args := m.Called(ctx, firstName, lastName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Search(ctx context.Context, phone string) (*model.Client, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) CheckDuplicates(ctx context.Context, phone string) ([]*model.ClientSummary, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ClientSummary), args.Error(1)
}

func (m *MockClientService) List(ctx context.Context) ([]*model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Client), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, client *model.Client) (*model.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientService) ListBookings(ctx context.Context, clientID int64) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
	loc *time.Location
}

func (m *MockBookingService) Location() *time.Location {
	return m.loc
}

func (m *MockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingService) Get(ctx context.Context, id int64) (*model.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, serviceFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingService) Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingService) AllByServiceDate(ctx context.Context) ([]model.ServiceDateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceDateCount), args.Error(1)
}

func (m *MockBookingService) AvailabilityByDate(ctx context.Context, day time.Time) (map[string]model.Availability, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.Availability), args.Error(1)
}

func (m *MockBookingService) CheckAvailability(ctx context.Context, serviceName string, day time.Time) (model.Availability, error) {
	args := m.Called(ctx, serviceName, day)
	return args.Get(0).(model.Availability), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context) ([]*model.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, in service.CreateCommentInput) (*model.Comment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
