package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const bookingDetailsSelect = `
	SELECT b.id, b.client_id, b.service_name, b.booking_date, b.address, b.created_at, b.updated_at,
	       COALESCE(c.first_name, ''), COALESCE(c.last_name, ''), COALESCE(c.email, ''), COALESCE(c.phone_number, '')
	FROM bookings b
	LEFT JOIN clients c ON b.client_id = c.id
`

// serviceRankSQL повторяет model.ServiceRank на стороне БД
var serviceRankSQL = buildServiceRankSQL("b.service_name")

func buildServiceRankSQL(column string) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for i, s := range model.Catalog {
		fmt.Fprintf(&sb, " WHEN %s LIKE '%%%s%%' THEN %d", column, s.Keyword, i+1)
	}
	fmt.Fprintf(&sb, " ELSE %d END", model.OtherServiceRank)
	return sb.String()
}

type BookingRepository struct {
	*base.Repository
	loc *time.Location
}

// NewBookingRepository создаёт репозиторий; loc задаёт границы календарных дней при группировке
func NewBookingRepository(pool base.DB, loc *time.Location) *BookingRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingRepository{Repository: base.NewRepository(pool), loc: loc}
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return insertBooking(ctx, r.Pool(), booking)
}

// CreateClientWithBooking создаёт клиента и его бронирование в одной транзакции
func (r *BookingRepository) CreateClientWithBooking(ctx context.Context, client *model.Client, booking *model.Booking) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if err := insertClient(ctx, tx, client); err != nil {
			return err
		}
		booking.ClientID = client.ID
		return insertBooking(ctx, tx, booking)
	})
}

func insertBooking(ctx context.Context, q base.Querier, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (client_id, service_name, booking_date, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(
		ctx, query,
		booking.ClientID,
		booking.ServiceName,
		booking.BookingDate,
		booking.Address,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if base.IsForeignKeyViolation(err, bookingsClientIDFkey) {
			return fmt.Errorf("create booking: %w", model.ErrClientNotFound)
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetDetails получает бронирование с данными клиента
func (r *BookingRepository) GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` WHERE b.id = $1`

	details, err := scanBookingDetails(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return details, nil
}

// List возвращает бронирования, новые сначала; serviceFilter ищет по подстроке без учёта регистра
func (r *BookingRepository) List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error) {
	query := bookingDetailsSelect
	var args []any
	if serviceFilter != "" {
		query += ` WHERE b.service_name ILIKE $1`
		args = append(args, "%"+serviceFilter+"%")
	}
	query += ` ORDER BY b.booking_date DESC`

	return r.queryDetails(ctx, "list bookings", query, args...)
}

// ListByService возвращает все бронирования в порядке каталога услуг
func (r *BookingRepository) ListByService(ctx context.Context) ([]*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` ORDER BY ` + serviceRankSQL + `, b.booking_date DESC`

	return r.queryDetails(ctx, "list bookings by service", query)
}

// ListBetween возвращает бронирования в интервале [from, to) по возрастанию даты
func (r *BookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` WHERE b.booking_date >= $1 AND b.booking_date < $2 ORDER BY b.booking_date`

	return r.queryDetails(ctx, "list bookings between", query, from, to)
}

// ListByClient возвращает бронирования клиента, новые сначала
func (r *BookingRepository) ListByClient(ctx context.Context, clientID int64) ([]*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` WHERE b.client_id = $1 ORDER BY b.booking_date DESC`

	return r.queryDetails(ctx, "list bookings by client", query, clientID)
}

func (r *BookingRepository) queryDetails(ctx context.Context, op, query string, args ...any) ([]*model.BookingDetails, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*model.BookingDetails
	for rows.Next() {
		details, err := scanBookingDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, details)
	}

	return bookings, rows.Err()
}

// Update обновляет бронирование, nil если бронирования нет
func (r *BookingRepository) Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error) {
	sets := []string{"service_name = $1", "booking_date = $2", "updated_at = CURRENT_TIMESTAMP"}
	args := []any{upd.ServiceName, upd.BookingDate}

	if upd.ClientID != nil {
		args = append(args, *upd.ClientID)
		sets = append(sets, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if upd.Address != nil {
		args = append(args, *upd.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE bookings SET %s
		WHERE id = $%d
		RETURNING id, client_id, service_name, booking_date, address, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	var booking model.Booking
	err := r.Pool().QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ServiceName,
		&booking.BookingDate,
		&booking.Address,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		if base.IsForeignKeyViolation(err, bookingsClientIDFkey) {
			return nil, fmt.Errorf("update booking: %w", model.ErrClientNotFound)
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	return &booking, nil
}

// Delete удаляет бронирование и возвращает количество удалённых строк (0 или 1)
func (r *BookingRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete booking: %w", err)
	}
	return affected, nil
}

// CountBetween считает бронирования в интервале [from, to)
func (r *BookingRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE booking_date >= $1 AND booking_date < $2`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

// PopularServices возвращает самые востребованные услуги
func (r *BookingRepository) PopularServices(ctx context.Context, limit int) ([]model.ServiceCount, error) {
	rows, err := r.Pool().Query(ctx, `
		SELECT service_name, COUNT(*) AS count
		FROM bookings
		GROUP BY service_name
		ORDER BY count DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("popular services: %w", err)
	}
	defer rows.Close()

	var services []model.ServiceCount
	for rows.Next() {
		var s model.ServiceCount
		if err := rows.Scan(&s.ServiceName, &s.Count); err != nil {
			return nil, fmt.Errorf("scan service count: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

// CountsByServiceAndDate группирует бронирования по услуге и дню в порядке каталога
func (r *BookingRepository) CountsByServiceAndDate(ctx context.Context) ([]model.ServiceDateCount, error) {
	query := `
		SELECT b.service_name, DATE(b.booking_date AT TIME ZONE $1) AS booking_date, COUNT(*) AS booking_count
		FROM bookings b
		GROUP BY b.service_name, DATE(b.booking_date AT TIME ZONE $1)
		ORDER BY ` + serviceRankSQL + `, DATE(b.booking_date AT TIME ZONE $1) DESC`

	rows, err := r.Pool().Query(ctx, query, r.loc.String())
	if err != nil {
		return nil, fmt.Errorf("counts by service and date: %w", err)
	}
	defer rows.Close()

	var counts []model.ServiceDateCount
	for rows.Next() {
		var c model.ServiceDateCount
		if err := rows.Scan(&c.ServiceName, &c.BookingDate, &c.BookingCount); err != nil {
			return nil, fmt.Errorf("scan service date count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CountByServiceBetween считает бронирования каждой услуги в интервале [from, to)
func (r *BookingRepository) CountByServiceBetween(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	rows, err := r.Pool().Query(ctx, `
		SELECT service_name, COUNT(*)
		FROM bookings
		WHERE booking_date >= $1 AND booking_date < $2
		GROUP BY service_name
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("count by service: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan service count: %w", err)
		}
		counts[name] = count
	}

	return counts, rows.Err()
}

func scanBookingDetails(row pgx.Row) (*model.BookingDetails, error) {
	var d model.BookingDetails
	err := row.Scan(
		&d.ID,
		&d.ClientID,
		&d.ServiceName,
		&d.BookingDate,
		&d.Address,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.ClientFirstName,
		&d.ClientLastName,
		&d.ClientEmail,
		&d.ClientPhone,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
