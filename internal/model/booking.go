package model

import "time"

type Booking struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	ServiceName string    `json:"service_name"`
	BookingDate time.Time `json:"booking_date"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingDetails бронирование вместе с данными клиента (LEFT JOIN clients)
type BookingDetails struct {
	Booking
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`
}

// AddressOrEmpty возвращает адрес или пустую строку
func (b *Booking) AddressOrEmpty() string {
	if b.Address == nil {
		return ""
	}
	return *b.Address
}

// ServiceDateCount количество бронирований услуги на дату
type ServiceDateCount struct {
	ServiceName  string    `json:"service_name"`
	BookingDate  time.Time `json:"booking_date"`
	BookingCount int64     `json:"booking_count"`
}

// ServiceCount количество бронирований по услуге
type ServiceCount struct {
	ServiceName string `json:"service_name"`
	Count       int64  `json:"count"`
}

// Stats сводка для админ-консоли
type Stats struct {
	Today           int64
	ThisMonth       int64
	TotalClients    int64
	PopularServices []ServiceCount
}

// Availability загрузка услуги на конкретную дату
type Availability struct {
	Current   int64 `json:"current"`
	Limit     int64 `json:"limit"`
	Available bool  `json:"available"`
}

// BookingUpdate изменяемые поля бронирования; ClientID и Address меняются только если заданы
type BookingUpdate struct {
	ServiceName string
	BookingDate time.Time
	ClientID    *int64
	Address     *string
}

// BookingDraft данные бронирования, собранные в диалоге с ботом до подтверждения
type BookingDraft struct {
	ServiceName   string
	BookingDate   time.Time
	ClientName    string
	ClientPhone   string
	ClientAddress string
}

// BookingEvent событие о новом бронировании для уведомлений
type BookingEvent struct {
	ID          string    `json:"event_id"`
	Booking     Booking   `json:"booking"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	OccurredAt  time.Time `json:"occurred_at"`
}
