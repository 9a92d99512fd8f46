package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
)

// ClientStore хранилище клиентов
type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
	FindByPhone(ctx context.Context, phone string) (*model.Client, error)
	List(ctx context.Context) ([]*model.Client, error)
	Recent(ctx context.Context, limit int) ([]*model.ClientSummary, error)
	DuplicatesByPhone(ctx context.Context, phone string) ([]*model.ClientSummary, error)
	Update(ctx context.Context, client *model.Client) (*model.Client, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// BookingStore хранилище бронирований
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	CreateClientWithBooking(ctx context.Context, client *model.Client, booking *model.Booking) error
	GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error)
	List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error)
	ListByService(ctx context.Context) ([]*model.BookingDetails, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.BookingDetails, error)
	ListByClient(ctx context.Context, clientID int64) ([]*model.BookingDetails, error)
	Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	PopularServices(ctx context.Context, limit int) ([]model.ServiceCount, error)
	CountsByServiceAndDate(ctx context.Context) ([]model.ServiceDateCount, error)
	CountByServiceBetween(ctx context.Context, from, to time.Time) (map[string]int64, error)
}

// CommentStore хранилище отзывов
type CommentStore interface {
	ListApproved(ctx context.Context) ([]*model.Comment, error)
	ExistsForClient(ctx context.Context, clientID int64) (bool, error)
	Create(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// AvailabilityCache кэш загрузки услуг по дням
type AvailabilityCache interface {
	GetAvailability(ctx context.Context, day string) (map[string]model.Availability, error)
	SetAvailability(ctx context.Context, day string, availability map[string]model.Availability) error
	InvalidateAvailability(ctx context.Context, day string) error
	InvalidateAllAvailability(ctx context.Context) error
}

// Announcer принимает события о новых бронированиях, не блокируя вызывающего
type Announcer interface {
	Announce(event model.BookingEvent)
}
