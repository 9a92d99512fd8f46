package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/rental_booking/internal/controller/dialogue"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDialogue struct {
	mock.Mock
}

func (m *MockDialogue) Handle(ctx context.Context, userID int64, text string) []dialogue.Response {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]dialogue.Response)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func textUpdate(userID, chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestHandleText_SendsResponsesWithKeyboard(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())
	ctx := context.Background()

	dlg.On("Handle", ctx, int64(7), dialogue.BtnAddBooking).Return([]dialogue.Response{
		{Text: "*Выберите услугу*", Keyboard: dialogue.KeyboardServices},
	})

	var sent *bot.SendMessageParams
	sender.On("SendMessage", ctx, mock.AnythingOfType("*bot.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*bot.SendMessageParams) }).
		Return(&models.Message{}, nil)

	h.handleText(ctx, sender, textUpdate(7, 70, dialogue.BtnAddBooking))

	require.NotNil(t, sent)
	assert.Equal(t, int64(70), sent.ChatID)
	assert.Equal(t, "*Выберите услугу*", sent.Text)
	assert.Equal(t, models.ParseModeMarkdown, sent.ParseMode)
	_, ok := sent.ReplyMarkup.(*models.ReplyKeyboardMarkup)
	assert.True(t, ok)
	dlg.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestHandleText_KeepsKeyboardWhenNone(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())
	ctx := context.Background()

	dlg.On("Handle", ctx, int64(7), "Ivan").Return([]dialogue.Response{{Text: "ok", Keyboard: dialogue.KeyboardNone}})
	sender.On("SendMessage", ctx, mock.MatchedBy(func(p *bot.SendMessageParams) bool {
		return p.ReplyMarkup == nil
	})).Return(&models.Message{}, nil)

	h.handleText(ctx, sender, textUpdate(7, 7, "Ivan"))

	sender.AssertExpectations(t)
}

func TestHandleText_IgnoredMessageSendsNothing(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())
	ctx := context.Background()

	dlg.On("Handle", ctx, int64(7), "привет").Return(nil)

	h.handleText(ctx, sender, textUpdate(7, 7, "привет"))

	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestHandleText_SkipsNonText(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())

	h.handleText(context.Background(), sender, &models.Update{})
	h.handleText(context.Background(), sender, textUpdate(7, 7, ""))

	dlg.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleText_SendFailureIsLogged(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())
	ctx := context.Background()

	dlg.On("Handle", ctx, int64(7), "x").Return([]dialogue.Response{{Text: "a"}, {Text: "b"}})
	sender.On("SendMessage", ctx, mock.Anything).Return(nil, errors.New("Bad Request: can't parse entities"))

	assert.NotPanics(t, func() { h.handleText(ctx, sender, textUpdate(7, 7, "x")) })
	sender.AssertNumberOfCalls(t, "SendMessage", 2)
}

func TestHandleText_RecoversFromPanic(t *testing.T) {
	dlg := new(MockDialogue)
	sender := new(MockSender)
	h := NewHandlers(dlg, zap.NewNop())
	ctx := context.Background()

	dlg.On("Handle", ctx, int64(7), "x").Run(func(mock.Arguments) { panic("boom") })
	sender.On("SendMessage", ctx, mock.MatchedBy(func(p *bot.SendMessageParams) bool {
		return p.ChatID == int64(7)
	})).Return(&models.Message{}, nil)

	assert.NotPanics(t, func() { h.handleText(ctx, sender, textUpdate(7, 7, "x")) })
	sender.AssertExpectations(t)
}
