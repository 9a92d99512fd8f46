package keyboard

import (
	"github.com/Freeeeeet/rental_booking/internal/controller/dialogue"
	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/go-telegram/bot/models"
)

// Main главное меню администратора
func Main() *models.ReplyKeyboardMarkup {
	return NewBuilder().
		Row(dialogue.BtnAllBookings, dialogue.BtnToday).
		Row(dialogue.BtnAddBooking, dialogue.BtnDeleteBookings).
		Row(dialogue.BtnClients, dialogue.BtnStats).
		Build()
}

// Services по кнопке на каждую услугу каталога и "Назад"
func Services() *models.ReplyKeyboardMarkup {
	b := NewBuilder()
	for _, s := range model.Catalog {
		b.Row(s.Label)
	}
	return b.Row(dialogue.BtnBack).Build()
}

func Confirm() *models.ReplyKeyboardMarkup {
	return NewBuilder().Row(dialogue.BtnConfirm, dialogue.BtnCancel).Build()
}

func YesNo() *models.ReplyKeyboardMarkup {
	return NewBuilder().Row(dialogue.BtnYes, dialogue.BtnNo).Build()
}

func Back() *models.ReplyKeyboardMarkup {
	return NewBuilder().Row(dialogue.BtnBack).Build()
}

// ForKind разметка для ответа диалога; nil если клавиатуру менять не нужно
func ForKind(kind dialogue.Keyboard) models.ReplyMarkup {
	switch kind {
	case dialogue.KeyboardMain:
		return Main()
	case dialogue.KeyboardServices:
		return Services()
	case dialogue.KeyboardConfirm:
		return Confirm()
	case dialogue.KeyboardYesNo:
		return YesNo()
	case dialogue.KeyboardBack:
		return Back()
	case dialogue.KeyboardRemove:
		return Remove()
	default:
		return nil
	}
}
