package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/controller/state"
	"github.com/Freeeeeet/rental_booking/internal/model"
	"go.uber.org/zap"
)

// SessionStore хранилище сессий диалога
type SessionStore interface {
	Lock(userID int64) func()
	Get(userID int64) (*state.Session, bool)
	Put(session *state.Session)
	Delete(userID int64)
}

// Guard проверяет права администратора
type Guard interface {
	IsPrivileged(userID int64) bool
}

// Bookings операции с бронированиями, нужные боту
type Bookings interface {
	CreateFromDraft(ctx context.Context, draft model.BookingDraft) (*model.BookingDetails, error)
	Get(ctx context.Context, id int64) (*model.BookingDetails, error)
	Delete(ctx context.Context, id int64) error
	ListByService(ctx context.Context) ([]*model.BookingDetails, error)
	ListToday(ctx context.Context) (time.Time, []*model.BookingDetails, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// Clients операции с клиентами, нужные боту
type Clients interface {
	Recent(ctx context.Context) ([]*model.ClientSummary, error)
}

// Engine конечный автомат диалога администратора
type Engine struct {
	sessions SessionStore
	guard    Guard
	bookings Bookings
	clients  Clients
	loc      *time.Location
	logger   *zap.Logger
}

func NewEngine(
	sessions SessionStore,
	guard Guard,
	bookings Bookings,
	clients Clients,
	loc *time.Location,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		sessions: sessions,
		guard:    guard,
		bookings: bookings,
		clients:  clients,
		loc:      loc,
		logger:   logger,
	}
}

// turn одно входящее сообщение вместе с текущей сессией пользователя
type turn struct {
	userID  int64
	intent  Intent
	session *state.Session // nil если диалога нет
}

type transition func(e *Engine, ctx context.Context, t *turn) []Response

type transitionKey struct {
	step   state.Step
	intent IntentKind
}

// stepTransitions переходы, зависящие от шага диалога
var stepTransitions = map[transitionKey]transition{
	{state.StepAwaitingService, IntentService}:        (*Engine).chooseService,
	{state.StepAwaitingDate, IntentText}:              (*Engine).enterDate,
	{state.StepAwaitingClientName, IntentText}:        (*Engine).enterClientName,
	{state.StepAwaitingClientPhone, IntentText}:       (*Engine).enterClientPhone,
	{state.StepAwaitingClientAddress, IntentText}:     (*Engine).enterClientAddress,
	{state.StepAwaitingConfirmation, IntentConfirm}:   (*Engine).commit,
	{state.StepAwaitingDeleteID, IntentText}:          (*Engine).enterDeleteID,
	{state.StepAwaitingDeleteConfirmation, IntentYes}: (*Engine).confirmDelete,
	{state.StepAwaitingDeleteConfirmation, IntentNo}:  (*Engine).rejectDelete,
}

// commandTransitions команды меню, работающие на любом шаге
var commandTransitions = map[IntentKind]transition{
	IntentStart:     (*Engine).start,
	IntentBack:      (*Engine).back,
	IntentCancel:    (*Engine).cancel,
	IntentCreate:    privileged((*Engine).beginCreate),
	IntentDelete:    privileged((*Engine).beginDelete),
	IntentListAll:   privileged((*Engine).reportAll),
	IntentListToday: privileged((*Engine).reportToday),
	IntentClients:   privileged((*Engine).reportClients),
	IntentStats:     privileged((*Engine).reportStats),
	IntentService:   (*Engine).serviceWithoutSession,
	IntentConfirm:   (*Engine).sessionExpired,
}

// privileged пропускает только администратора; остальным отказ без изменения сессии
func privileged(next transition) transition {
	return func(e *Engine, ctx context.Context, t *turn) []Response {
		if err := e.authorize(t.userID); errors.Is(err, model.ErrAccessDenied) {
			e.logger.Warn("Access denied", zap.Error(err), zap.Stringer("intent", t.intent.Kind))
			return reply(msgAccessDenied(), KeyboardBack)
		}
		return next(e, ctx, t)
	}
}

func (e *Engine) authorize(userID int64) error {
	if !e.guard.IsPrivileged(userID) {
		return fmt.Errorf("user %d: %w", userID, model.ErrAccessDenied)
	}
	return nil
}

// Handle обрабатывает сообщение пользователя и возвращает ответы.
// Пустой результат означает, что сообщение проигнорировано.
func (e *Engine) Handle(ctx context.Context, userID int64, text string) []Response {
	unlock := e.sessions.Lock(userID)
	defer unlock()

	t := &turn{userID: userID, intent: Classify(text)}
	if session, ok := e.sessions.Get(userID); ok {
		t.session = session
	}

	step := state.StepIdle
	if t.session != nil {
		step = t.session.Step
	}

	if next, ok := stepTransitions[transitionKey{step, t.intent.Kind}]; ok {
		return next(e, ctx, t)
	}
	if next, ok := commandTransitions[t.intent.Kind]; ok {
		return next(e, ctx, t)
	}

	return nil
}

func reply(text string, keyboard Keyboard) []Response {
	return []Response{{Text: text, Keyboard: keyboard}}
}

// advance переводит сессию на следующий шаг и сохраняет её
func (e *Engine) advance(session *state.Session, step state.Step) {
	session.Step = step
	e.sessions.Put(session)
}

func (e *Engine) start(_ context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)
	if e.guard.IsPrivileged(t.userID) {
		return reply(msgWelcomeAdmin(), KeyboardMain)
	}
	return reply(msgWelcomeGuest(), KeyboardMain)
}

func (e *Engine) back(_ context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)
	return reply(msgMainMenu(), KeyboardMain)
}

func (e *Engine) cancel(_ context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)
	return reply(msgCancelled(), KeyboardMain)
}

func (e *Engine) sessionExpired(_ context.Context, _ *turn) []Response {
	return reply(msgSessionExpired(), KeyboardMain)
}

func (e *Engine) serviceWithoutSession(_ context.Context, _ *turn) []Response {
	return reply(msgStartWithAdd(), KeyboardBack)
}

// Создание бронирования

func (e *Engine) beginCreate(_ context.Context, t *turn) []Response {
	e.sessions.Put(&state.Session{UserID: t.userID, Step: state.StepAwaitingService})
	return reply(msgChooseService(), KeyboardServices)
}

func (e *Engine) chooseService(_ context.Context, t *turn) []Response {
	t.session.Draft.ServiceName = t.intent.Service.Name
	e.advance(t.session, state.StepAwaitingDate)
	return reply(msgEnterDate(), KeyboardRemove)
}

func (e *Engine) enterDate(_ context.Context, t *turn) []Response {
	date, err := ParseDate(t.intent.Text, e.loc)
	switch {
	case errors.Is(err, ErrDateFormat):
		return reply(msgBadDateFormat(), KeyboardNone)
	case err != nil:
		return reply(msgBadDate(), KeyboardNone)
	}

	t.session.Draft.BookingDate = date
	e.advance(t.session, state.StepAwaitingClientName)
	return reply(msgEnterClientName(), KeyboardNone)
}

func (e *Engine) enterClientName(_ context.Context, t *turn) []Response {
	t.session.Draft.ClientName = t.intent.Text
	e.advance(t.session, state.StepAwaitingClientPhone)
	return reply(msgEnterClientPhone(), KeyboardNone)
}

func (e *Engine) enterClientPhone(_ context.Context, t *turn) []Response {
	t.session.Draft.ClientPhone = t.intent.Text
	e.advance(t.session, state.StepAwaitingClientAddress)
	return reply(msgEnterClientAddress(), KeyboardNone)
}

func (e *Engine) enterClientAddress(_ context.Context, t *turn) []Response {
	t.session.Draft.ClientAddress = t.intent.Text
	e.advance(t.session, state.StepAwaitingConfirmation)
	return reply(msgCheckDraft(t.session.Draft, e.loc), KeyboardConfirm)
}

// commit создаёт клиента и бронирование; сессия удаляется при любом исходе
func (e *Engine) commit(ctx context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)

	details, err := e.bookings.CreateFromDraft(ctx, t.session.Draft)
	if err != nil {
		e.logger.Error("Failed to create booking from bot",
			zap.Int64("user_id", t.userID),
			zap.String("service", t.session.Draft.ServiceName),
			zap.Error(err),
		)
		return reply(msgCreateFailed(err), KeyboardMain)
	}

	e.logger.Info("Booking created via Telegram",
		zap.Int64("user_id", t.userID),
		zap.Int64("booking_id", details.ID),
	)
	return reply(msgCreated(t.session.Draft, details.ID, e.loc), KeyboardMain)
}

// Удаление бронирования

func (e *Engine) beginDelete(_ context.Context, t *turn) []Response {
	e.sessions.Put(&state.Session{UserID: t.userID, Step: state.StepAwaitingDeleteID})
	return reply(msgEnterDeleteID(), KeyboardRemove)
}

func (e *Engine) enterDeleteID(ctx context.Context, t *turn) []Response {
	id, err := ParseID(t.intent.Text)
	if err != nil {
		e.sessions.Delete(t.userID)
		return reply(msgNotANumber(), KeyboardMain)
	}

	booking, err := e.bookings.Get(ctx, id)
	if err != nil {
		e.sessions.Delete(t.userID)
		if errors.Is(err, model.ErrBookingNotFound) {
			return reply(msgBookingNotFound(id), KeyboardMain)
		}
		e.logger.Error("Failed to load booking for deletion", zap.Int64("booking_id", id), zap.Error(err))
		return reply(msgCheckFailed(), KeyboardMain)
	}

	t.session.DeleteCandidate = booking
	e.advance(t.session, state.StepAwaitingDeleteConfirmation)
	return reply(msgConfirmDelete(booking, e.loc), KeyboardYesNo)
}

func (e *Engine) confirmDelete(ctx context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)

	candidate := t.session.DeleteCandidate
	if err := e.bookings.Delete(ctx, candidate.ID); err != nil {
		if errors.Is(err, model.ErrBookingNotFound) {
			return reply(msgVanished(), KeyboardMain)
		}
		e.logger.Error("Failed to delete booking", zap.Int64("booking_id", candidate.ID), zap.Error(err))
		return reply(msgDeleteFailed(), KeyboardMain)
	}

	e.logger.Info("Booking deleted via Telegram",
		zap.Int64("user_id", t.userID),
		zap.Int64("booking_id", candidate.ID),
	)
	return reply(msgDeleted(candidate, e.loc), KeyboardMain)
}

func (e *Engine) rejectDelete(_ context.Context, t *turn) []Response {
	e.sessions.Delete(t.userID)
	return reply(msgDeleteCancelled(), KeyboardMain)
}
