package handlers

import (
	"context"

	"github.com/Freeeeeet/rental_booking/internal/controller/dialogue"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Dialogue обрабатывает текст пользователя и возвращает ответы бота
type Dialogue interface {
	Handle(ctx context.Context, userID int64, text string) []dialogue.Response
}

// Sender отправка сообщений в Telegram, реализуется *bot.Bot
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	dialogue Dialogue
	logger   *zap.Logger
}

// NewHandlers создаёт новый обработчик сообщений
func NewHandlers(dialogue Dialogue, logger *zap.Logger) *Handlers {
	return &Handlers{
		dialogue: dialogue,
		logger:   logger,
	}
}
