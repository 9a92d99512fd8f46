package state

import (
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
)

// Step текущий шаг диалога пользователя
type Step string

const (
	StepIdle Step = "" // Нет активного диалога

	// Создание бронирования
	StepAwaitingService       Step = "awaiting_service"
	StepAwaitingDate          Step = "awaiting_date"
	StepAwaitingClientName    Step = "awaiting_client_name"
	StepAwaitingClientPhone   Step = "awaiting_client_phone"
	StepAwaitingClientAddress Step = "awaiting_client_address"
	StepAwaitingConfirmation  Step = "awaiting_confirmation"

	// Удаление бронирования
	StepAwaitingDeleteID           Step = "awaiting_delete_id"
	StepAwaitingDeleteConfirmation Step = "awaiting_delete_confirmation"
)

// Session диалог одного пользователя, живёт только в памяти процесса
type Session struct {
	UserID          int64
	Step            Step
	Draft           model.BookingDraft
	DeleteCandidate *model.BookingDetails
	UpdatedAt       time.Time
}
