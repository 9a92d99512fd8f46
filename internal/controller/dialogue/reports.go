package dialogue

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/rental_booking/internal/controller/formatting"
	"github.com/Freeeeeet/rental_booking/internal/model"
	"go.uber.org/zap"
)

const (
	otherServicesTitle = "Другие услуги"
	otherServicesEmoji = "📦"
)

// reportAll все бронирования, сгруппированные по услугам в порядке каталога
func (e *Engine) reportAll(ctx context.Context, _ *turn) []Response {
	bookings, err := e.bookings.ListByService(ctx)
	if err != nil {
		e.logger.Error("Failed to list bookings", zap.Error(err))
		return reply(formatting.Escape("❌ Ошибка при получении данных"), KeyboardBack)
	}
	if len(bookings) == 0 {
		return reply(formatting.Escape("📭 Нет активных бронирований"), KeyboardBack)
	}

	model.SortBookings(bookings)

	groups := make(map[int][]*model.BookingDetails)
	for _, b := range bookings {
		rank := model.ServiceRank(b.ServiceName)
		groups[rank] = append(groups[rank], b)
	}

	blocks := []string{formatting.NewMessage().Text("📋 ").Bold("Все бронирования по услугам:").Line().Line().String()}
	for i, svc := range model.Catalog {
		blocks = append(blocks, e.serviceGroupBlocks(svc.Emoji, svc.Name, groups[i+1])...)
	}
	blocks = append(blocks, e.serviceGroupBlocks(otherServicesEmoji, otherServicesTitle, groups[model.OtherServiceRank])...)

	messages := formatting.Split(blocks, formatting.MaxMessageLength)
	responses := make([]Response, len(messages))
	for i, text := range messages {
		responses[i] = Response{Text: text, Keyboard: KeyboardNone}
	}
	responses[len(responses)-1].Keyboard = KeyboardBack
	return responses
}

// serviceGroupBlocks одна запись на бронирование, заголовок группы входит в первую
func (e *Engine) serviceGroupBlocks(emoji, title string, bookings []*model.BookingDetails) []string {
	if len(bookings) == 0 {
		return nil
	}

	blocks := make([]string, 0, len(bookings))
	for i, b := range bookings {
		m := formatting.NewMessage()
		if i == 0 {
			m.Text(emoji + " ").Bold(title + ":").Line()
		}
		m.Text(fmt.Sprintf(" %d. 📅 %s | 👤 %s | 📞 %s | 🆔 ",
			i+1,
			formatting.FormatDate(b.BookingDate.In(e.loc)),
			clientName(b),
			orDefault(b.ClientPhone, "-"),
		)).Bold(strconv.FormatInt(b.ID, 10)).Line()
		if address := b.AddressOrEmpty(); address != "" {
			m.Text("    📍 " + address).Line()
		}
		if i == len(bookings)-1 {
			m.Line()
		}
		blocks = append(blocks, m.String())
	}
	return blocks
}

// reportToday бронирования на текущий день
func (e *Engine) reportToday(ctx context.Context, _ *turn) []Response {
	today, bookings, err := e.bookings.ListToday(ctx)
	if err != nil {
		e.logger.Error("Failed to list today bookings", zap.Error(err))
		return reply(formatting.Escape("❌ Ошибка"), KeyboardBack)
	}

	day := formatting.FormatDate(today)
	if len(bookings) == 0 {
		return reply(formatting.NewMessage().Text("📅 ").Bold("Сегодня ("+day+") нет бронирований").String(), KeyboardBack)
	}

	m := formatting.NewMessage().Text("📅 ").Bold("Бронирования на сегодня (" + day + "):").Line().Line()
	for i, b := range bookings {
		m.Bold(fmt.Sprintf("%d. %s %s", i+1, model.ServiceEmoji(b.ServiceName), b.ServiceName)).Line()
		m.Text(" " + formatting.FormatTime(b.BookingDate.In(e.loc))).Line()
		m.Text(" 👤 " + clientName(b)).Line()
		m.Text(" 📞 " + orDefault(b.ClientPhone, "-")).Line()
		if address := b.AddressOrEmpty(); address != "" {
			m.Text(" 📍 " + address).Line()
		}
		m.Text(" 🆔 ").Bold("ID: " + strconv.FormatInt(b.ID, 10)).Line().Line()
	}

	return reply(m.String(), KeyboardBack)
}

// reportClients последние клиенты с количеством бронирований
func (e *Engine) reportClients(ctx context.Context, _ *turn) []Response {
	clients, err := e.clients.Recent(ctx)
	if err != nil {
		e.logger.Error("Failed to list clients", zap.Error(err))
		return reply(formatting.Escape("❌ Ошибка при получении данных клиентов"), KeyboardBack)
	}
	if len(clients) == 0 {
		return reply(formatting.NewMessage().Text("👥 ").Bold("Нет клиентов в базе").String(), KeyboardBack)
	}

	m := formatting.NewMessage().Text("👥 ").Bold("Последние клиенты:").Line().Line()
	for i, c := range clients {
		m.Bold(fmt.Sprintf("%d. %s", i+1, c.FullName())).Line()
		m.Text("   📞 " + orDefault(c.PhoneNumber, "-")).Line()
		m.Text("   📧 " + orDefault(c.Email, "-")).Line()
		m.Text(fmt.Sprintf("   📊 Бронирований: %d", c.BookingCount)).Line()
		m.Text(fmt.Sprintf("   🆔 ID: %d", c.ID)).Line().Line()
	}

	return reply(m.String(), KeyboardBack)
}

// reportStats сводная статистика
func (e *Engine) reportStats(ctx context.Context, _ *turn) []Response {
	stats, err := e.bookings.Stats(ctx)
	if err != nil {
		e.logger.Error("Failed to collect stats", zap.Error(err))
		return reply(formatting.Escape("❌ Ошибка"), KeyboardBack)
	}

	m := formatting.NewMessage().
		Text("📊 ").Bold("Статистика бронирований:").Line().Line().
		Text("📅 ").Bold("Сегодня:").Text(fmt.Sprintf(" %d", stats.Today)).Line().
		Text("📈 ").Bold("Этот месяц:").Text(fmt.Sprintf(" %d", stats.ThisMonth)).Line().
		Text("👥 ").Bold("Всего клиентов:").Text(fmt.Sprintf(" %d", stats.TotalClients)).Line().Line().
		Bold("Популярные услуги:")
	for i, s := range stats.PopularServices {
		m.Line().Text(fmt.Sprintf("%d. %s: %d", i+1, s.ServiceName, s.Count))
	}

	return reply(m.String(), KeyboardBack)
}
