package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"go.uber.org/zap"
)

// RecentClientsLimit сколько клиентов показывает бот в разделе "Клиенты"
const RecentClientsLimit = 10

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     *string
	Password    string
}

type ClientService struct {
	clients  ClientStore
	bookings BookingStore
	logger   *zap.Logger
}

func NewClientService(clients ClientStore, bookings BookingStore, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients:  clients,
		bookings: bookings,
		logger:   logger,
	}
}

// Register регистрирует клиента с паролем
func (s *ClientService) Register(ctx context.Context, in RegisterInput) (*model.Client, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		PasswordHash: hash,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client registered",
		zap.Int64("client_id", client.ID),
		zap.String("email", client.Email),
	)

	return client, nil
}

// Login проверяет email и пароль
func (s *ClientService) Login(ctx context.Context, email, password string) (*model.Client, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if client == nil || !CheckPassword(client.PasswordHash, password) {
		return nil, model.ErrInvalidCredentials
	}

	return client, nil
}

// CreateWithPlaceholder создаёт клиента без email и пароля, подставляя заглушки.
// При совпадении сгенерированного email делается ещё одна попытка с новым адресом.
func (s *ClientService) CreateWithPlaceholder(ctx context.Context, firstName, lastName, phone string) (*model.Client, error) {
	client := &model.Client{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
	}

	err := withPlaceholderRetry(client, func() error {
		return s.clients.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Client created with placeholder credentials",
		zap.Int64("client_id", client.ID),
		zap.String("phone", phone),
	)

	return client, nil
}

// withPlaceholderRetry заполняет учётные данные клиента и вызывает create,
// повторяя один раз с новыми данными при конфликте email
func withPlaceholderRetry(client *model.Client, create func() error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		creds, credErr := NewPlaceholderCredentials()
		if credErr != nil {
			return credErr
		}
		client.Email = creds.Email
		client.PasswordHash = creds.PasswordHash

		err = create()
		if !errors.Is(err, model.ErrDuplicateEmail) {
			return err
		}
	}
	return err
}

// Search ищет клиента по точному номеру телефона
func (s *ClientService) Search(ctx context.Context, phone string) (*model.Client, error) {
	client, err := s.clients.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, model.ErrClientNotFound
	}
	return client, nil
}

// CheckDuplicates возвращает клиентов с тем же телефоном
func (s *ClientService) CheckDuplicates(ctx context.Context, phone string) ([]*model.ClientSummary, error) {
	return s.clients.DuplicatesByPhone(ctx, phone)
}

func (s *ClientService) List(ctx context.Context) ([]*model.Client, error) {
	return s.clients.List(ctx)
}

// Recent последние добавленные клиенты с количеством бронирований
func (s *ClientService) Recent(ctx context.Context) ([]*model.ClientSummary, error) {
	return s.clients.Recent(ctx, RecentClientsLimit)
}

// Update обновляет данные клиента
func (s *ClientService) Update(ctx context.Context, client *model.Client) (*model.Client, error) {
	updated, err := s.clients.Update(ctx, client)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.ErrClientNotFound
	}
	return updated, nil
}

// Delete удаляет клиента; клиента с бронированиями удалить нельзя
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	affected, err := s.clients.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrClientNotFound
	}

	s.logger.Info("Client deleted", zap.Int64("client_id", id))
	return nil
}

// ListBookings бронирования клиента, новые сначала
func (s *ClientService) ListBookings(ctx context.Context, clientID int64) ([]*model.BookingDetails, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, model.ErrClientNotFound
	}

	return s.bookings.ListByClient(ctx, clientID)
}
