package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// PopularServicesLimit размер топа услуг в статистике
	PopularServicesLimit = 5

	dayKeyLayout = "2006-01-02"
)

type BookingServiceOption func(*BookingService)

// WithAvailabilityCache включает кэш загрузки по дням
func WithAvailabilityCache(cache AvailabilityCache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

// WithAnnouncer подключает рассылку уведомлений о новых бронированиях
func WithAnnouncer(announcer Announcer) BookingServiceOption {
	return func(s *BookingService) {
		s.announcer = announcer
	}
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

type BookingService struct {
	bookings  BookingStore
	clients   ClientStore
	cache     AvailabilityCache
	announcer Announcer
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewBookingService(
	bookings BookingStore,
	clients ClientStore,
	loc *time.Location,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		bookings: bookings,
		clients:  clients,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location часовой пояс, в котором считаются календарные дни
func (s *BookingService) Location() *time.Location {
	return s.loc
}

// Today начало текущего дня
func (s *BookingService) Today() time.Time {
	return s.dayStart(s.now())
}

func (s *BookingService) dayStart(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// CreateFromDraft создаёт клиента и бронирование из черновика бота одной транзакцией.
// Email клиента генерируется; при его конфликте делается одна повторная попытка.
func (s *BookingService) CreateFromDraft(ctx context.Context, draft model.BookingDraft) (*model.BookingDetails, error) {
	client := &model.Client{
		FirstName:   draft.ClientName,
		PhoneNumber: draft.ClientPhone,
	}
	booking := &model.Booking{
		ServiceName: draft.ServiceName,
		BookingDate: draft.BookingDate,
		Address:     optionalString(draft.ClientAddress),
	}

	err := withPlaceholderRetry(client, func() error {
		return s.bookings.CreateClientWithBooking(ctx, client, booking)
	})
	if err != nil {
		return nil, fmt.Errorf("create booking from draft: %w", err)
	}

	details := &model.BookingDetails{
		Booking:         *booking,
		ClientFirstName: client.FirstName,
		ClientLastName:  client.LastName,
		ClientEmail:     client.Email,
		ClientPhone:     client.PhoneNumber,
	}

	s.logger.Info("Booking created from bot draft",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("client_id", client.ID),
		zap.String("service", booking.ServiceName),
	)

	s.afterCreate(ctx, details)
	return details, nil
}

// Create создаёт бронирование для существующего клиента
func (s *BookingService) Create(ctx context.Context, booking *model.Booking) error {
	client, err := s.clients.GetByID(ctx, booking.ClientID)
	if err != nil {
		return fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return model.ErrClientNotFound
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("client_id", booking.ClientID),
		zap.String("service", booking.ServiceName),
	)

	s.afterCreate(ctx, &model.BookingDetails{
		Booking:         *booking,
		ClientFirstName: client.FirstName,
		ClientLastName:  client.LastName,
		ClientEmail:     client.Email,
		ClientPhone:     client.PhoneNumber,
	})
	return nil
}

// afterCreate сбрасывает кэш загрузки и отправляет событие; ошибки только логируются
func (s *BookingService) afterCreate(ctx context.Context, details *model.BookingDetails) {
	if s.cache != nil {
		day := s.dayStart(details.BookingDate).Format(dayKeyLayout)
		if err := s.cache.InvalidateAvailability(ctx, day); err != nil {
			s.logger.Warn("Failed to invalidate availability cache", zap.String("day", day), zap.Error(err))
		}
	}

	if s.announcer != nil {
		s.announcer.Announce(model.BookingEvent{
			ID:          uuid.NewString(),
			Booking:     details.Booking,
			ClientName:  joinName(details.ClientFirstName, details.ClientLastName),
			ClientPhone: details.ClientPhone,
			OccurredAt:  s.now(),
		})
	}
}

// Get бронирование с данными клиента
func (s *BookingService) Get(ctx context.Context, id int64) (*model.BookingDetails, error) {
	details, err := s.bookings.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, model.ErrBookingNotFound
	}
	return details, nil
}

// List все бронирования, serviceFilter ищет по подстроке в названии услуги
func (s *BookingService) List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error) {
	return s.bookings.List(ctx, serviceFilter)
}

// ListByService все бронирования в порядке каталога
func (s *BookingService) ListByService(ctx context.Context) ([]*model.BookingDetails, error) {
	return s.bookings.ListByService(ctx)
}

// ListToday возвращает начало текущего дня и бронирования на него
func (s *BookingService) ListToday(ctx context.Context) (time.Time, []*model.BookingDetails, error) {
	today := s.Today()
	bookings, err := s.bookings.ListBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return today, nil, err
	}
	return today, bookings, nil
}

// Update изменяет бронирование
func (s *BookingService) Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error) {
	if upd.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *upd.ClientID)
		if err != nil {
			return nil, fmt.Errorf("get client: %w", err)
		}
		if client == nil {
			return nil, model.ErrClientNotFound
		}
	}

	booking, err := s.bookings.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	s.invalidateAll(ctx)
	return booking, nil
}

// Delete удаляет бронирование; ErrBookingNotFound если ни одна строка не удалена
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	affected, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrBookingNotFound
	}

	s.logger.Info("Booking deleted", zap.Int64("booking_id", id))
	s.invalidateAll(ctx)
	return nil
}

func (s *BookingService) invalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAllAvailability(ctx); err != nil {
		s.logger.Warn("Failed to invalidate availability cache", zap.Error(err))
	}
}

// AllByServiceDate количество бронирований по услугам и дням
func (s *BookingService) AllByServiceDate(ctx context.Context) ([]model.ServiceDateCount, error) {
	return s.bookings.CountsByServiceAndDate(ctx)
}

// AvailabilityByDate загрузка каждой услуги каталога на день
func (s *BookingService) AvailabilityByDate(ctx context.Context, day time.Time) (map[string]model.Availability, error) {
	start := s.dayStart(day)
	key := start.Format(dayKeyLayout)

	if s.cache != nil {
		cached, err := s.cache.GetAvailability(ctx, key)
		if err != nil {
			s.logger.Warn("Failed to read availability cache", zap.String("day", key), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	counts, err := s.bookings.CountByServiceBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	availability := make(map[string]model.Availability, len(model.Catalog))
	for _, svc := range model.Catalog {
		availability[svc.Name] = newAvailability(counts[svc.Name], svc.DayLimit)
	}

	if s.cache != nil {
		if err := s.cache.SetAvailability(ctx, key, availability); err != nil {
			s.logger.Warn("Failed to write availability cache", zap.String("day", key), zap.Error(err))
		}
	}

	return availability, nil
}

// CheckAvailability загрузка одной услуги на день
func (s *BookingService) CheckAvailability(ctx context.Context, serviceName string, day time.Time) (model.Availability, error) {
	start := s.dayStart(day)
	counts, err := s.bookings.CountByServiceBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return model.Availability{}, err
	}
	return newAvailability(counts[serviceName], model.DayLimit(serviceName)), nil
}

func newAvailability(current, limit int64) model.Availability {
	return model.Availability{
		Current:   current,
		Limit:     limit,
		Available: current < limit,
	}
}

// Stats сводка: бронирования сегодня и в этом месяце, число клиентов, популярные услуги
func (s *BookingService) Stats(ctx context.Context) (*model.Stats, error) {
	today := s.Today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)

	var stats model.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.bookings.CountBetween(gctx, today, today.AddDate(0, 0, 1))
		stats.Today = count
		return err
	})
	g.Go(func() error {
		count, err := s.bookings.CountBetween(gctx, monthStart, monthStart.AddDate(0, 1, 0))
		stats.ThisMonth = count
		return err
	})
	g.Go(func() error {
		count, err := s.clients.Count(gctx)
		stats.TotalClients = count
		return err
	})
	g.Go(func() error {
		services, err := s.bookings.PopularServices(gctx, PopularServicesLimit)
		stats.PopularServices = services
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}

	return &stats, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinName(first, last string) string {
	if last == "" {
		return first
	}
	if first == "" {
		return last
	}
	return first + " " + last
}
