package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// textMessage возвращает сообщение, если апдейт содержит текст от пользователя
func textMessage(update *models.Update) (*models.Message, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	if update.Message.Text == "" {
		return nil, false
	}
	return update.Message, true
}

// recoverPanic не даёт упасть боту из-за ошибки в обработке одного сообщения
func (h *Handlers) recoverPanic(ctx context.Context, s Sender, chatID int64) {
	if r := recover(); r != nil {
		h.logger.Error("Panic while handling message",
			zap.Int64("chat_id", chatID),
			zap.String("panic", fmt.Sprint(r)),
			zap.Stack("stack"),
		)
		h.sendError(ctx, s, chatID, "❌ Произошла ошибка. Попробуйте позже.")
	}
}
