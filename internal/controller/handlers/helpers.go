package handlers

import (
	"context"

	"github.com/Freeeeeet/rental_booking/internal/controller/dialogue"
	"github.com/Freeeeeet/rental_booking/internal/controller/formatting"
	"github.com/Freeeeeet/rental_booking/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendResponse отправляет ответ диалога в MarkdownV2 и логирует если не удалось
func (h *Handlers) sendResponse(ctx context.Context, s Sender, chatID int64, resp dialogue.Response) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      resp.Text,
		ParseMode: models.ParseModeMarkdown,
	}
	if markup := keyboard.ForKind(resp.Keyboard); markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := s.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, s Sender, chatID int64, text string) {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        formatting.Escape(text),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: keyboard.Main(),
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}
