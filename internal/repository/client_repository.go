package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const (
	clientsEmailKey      = "clients_email_key"
	bookingsClientIDFkey = "bookings_client_id_fkey"
)

const clientColumns = `id, first_name, COALESCE(last_name, ''), COALESCE(phone_number, ''), email, address, created_at`

type ClientRepository struct {
	*base.Repository
}

func NewClientRepository(pool base.DB) *ClientRepository {
	return &ClientRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт клиента
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return insertClient(ctx, r.Pool(), client)
}

func insertClient(ctx context.Context, q base.Querier, client *model.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, phone_number, email, address, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(
		ctx, query,
		client.FirstName,
		client.LastName,
		client.PhoneNumber,
		client.Email,
		client.Address,
		client.PasswordHash,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, clientsEmailKey) {
			return fmt.Errorf("create client: %w", model.ErrDuplicateEmail)
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

// GetByEmail получает клиента вместе с хэшем пароля
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	query := `SELECT ` + clientColumns + `, password_hash FROM clients WHERE email = $1`

	var client model.Client
	err := r.Pool().QueryRow(ctx, query, email).Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.PhoneNumber,
		&client.Email,
		&client.Address,
		&client.CreatedAt,
		&client.PasswordHash,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}

	return &client, nil
}

// FindByPhone возвращает первого клиента с таким телефоном
func (r *ClientRepository) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE phone_number = $1 LIMIT 1`

	client, err := scanClient(r.Pool().QueryRow(ctx, query, phone))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client by phone: %w", err)
	}

	return client, nil
}

// List возвращает всех клиентов по возрастанию ID
func (r *ClientRepository) List(ctx context.Context) ([]*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id ASC`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Recent возвращает последних клиентов с количеством бронирований
func (r *ClientRepository) Recent(ctx context.Context, limit int) ([]*model.ClientSummary, error) {
	query := `
		SELECT c.id, c.first_name, COALESCE(c.last_name, ''), COALESCE(c.phone_number, ''), c.email, c.address, c.created_at,
		       COUNT(b.id) AS booking_count
		FROM clients c
		LEFT JOIN bookings b ON c.id = b.client_id
		GROUP BY c.id
		ORDER BY c.id DESC
		LIMIT $1
	`

	return r.querySummaries(ctx, "recent clients", query, limit)
}

// DuplicatesByPhone возвращает до 5 клиентов с этим телефоном, новые сначала
func (r *ClientRepository) DuplicatesByPhone(ctx context.Context, phone string) ([]*model.ClientSummary, error) {
	query := `
		SELECT c.id, c.first_name, COALESCE(c.last_name, ''), COALESCE(c.phone_number, ''), c.email, c.address, c.created_at,
		       COUNT(b.id) AS booking_count
		FROM clients c
		LEFT JOIN bookings b ON c.id = b.client_id
		WHERE c.phone_number = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT 5
	`

	return r.querySummaries(ctx, "duplicate clients", query, phone)
}

func (r *ClientRepository) querySummaries(ctx context.Context, op, query string, args ...any) ([]*model.ClientSummary, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []*model.ClientSummary
	for rows.Next() {
		var c model.ClientSummary
		err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.PhoneNumber,
			&c.Email,
			&c.Address,
			&c.CreatedAt,
			&c.BookingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client summary: %w", err)
		}
		clients = append(clients, &c)
	}

	return clients, rows.Err()
}

// Update обновляет контактные данные клиента, nil если клиента нет
func (r *ClientRepository) Update(ctx context.Context, client *model.Client) (*model.Client, error) {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, email = $3, phone_number = NULLIF($4, ''), address = $5
		WHERE id = $6
		RETURNING ` + clientColumns

	updated, err := scanClient(r.Pool().QueryRow(
		ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		client.PhoneNumber,
		client.Address,
		client.ID,
	))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		if base.IsUniqueViolation(err, clientsEmailKey) {
			return nil, fmt.Errorf("update client: %w", model.ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("update client: %w", err)
	}

	return updated, nil
}

// Delete удаляет клиента и возвращает количество удалённых строк
func (r *ClientRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if base.IsForeignKeyViolation(err, bookingsClientIDFkey) {
			return 0, fmt.Errorf("delete client: %w", model.ErrClientHasBookings)
		}
		return 0, fmt.Errorf("delete client: %w", err)
	}
	return affected, nil
}

// Count возвращает общее количество клиентов
func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.PhoneNumber,
		&client.Email,
		&client.Address,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
