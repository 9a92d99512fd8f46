package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/controller/formatting"
	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender отправка сообщений в Telegram, реализуется *bot.Bot
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram сообщает администратору о новом бронировании
type Telegram struct {
	sender Sender
	chatID int64
	loc    *time.Location
}

func NewTelegram(sender Sender, chatID int64, loc *time.Location) *Telegram {
	return &Telegram{sender: sender, chatID: chatID, loc: loc}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(ctx context.Context, event model.BookingEvent) error {
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    t.chatID,
		Text:      announcement(event, t.loc),
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("send telegram announcement: %w", err)
	}
	return nil
}

func announcement(event model.BookingEvent, loc *time.Location) string {
	b := event.Booking
	address := b.AddressOrEmpty()
	if address == "" {
		address = "Не указан"
	}

	return formatting.NewMessage().
		Text("🆕 ").Bold("Новое бронирование!").Line().Line().
		Field("Услуга", b.ServiceName).
		Field("Дата", formatting.FormatDate(b.BookingDate.In(loc))).
		Field("Клиент", orDash(event.ClientName)).
		Field("Телефон", orDash(event.ClientPhone)).
		Field("Адрес", address).
		Field("Время создания", formatting.FormatClock(event.OccurredAt.In(loc))).
		Bold("ID:").Text(" " + strconv.FormatInt(b.ID, 10)).
		String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
