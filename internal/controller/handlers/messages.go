package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage передаёт любое текстовое сообщение в диалог и отправляет ответы
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleText(ctx, b, update)
}

func (h *Handlers) handleText(ctx context.Context, s Sender, update *models.Update) {
	msg, ok := textMessage(update)
	if !ok {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID
	defer h.recoverPanic(ctx, s, chatID)

	responses := h.dialogue.Handle(ctx, userID, msg.Text)
	if len(responses) == 0 {
		h.logger.Debug("Message ignored",
			zap.Int64("user_id", userID),
			zap.String("text", msg.Text),
		)
		return
	}

	for _, resp := range responses {
		h.sendResponse(ctx, s, chatID, resp)
	}
}
