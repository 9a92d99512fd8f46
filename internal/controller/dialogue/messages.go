package dialogue

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/controller/formatting"
	"github.com/Freeeeeet/rental_booking/internal/model"
)

const notSpecified = "Не указан"

func msgWelcomeAdmin() string {
	return formatting.NewMessage().
		Text("👋 ").Bold("Добро пожаловать в панель управления бронированиями!").Line().Line().
		Text("Выберите действие на клавиатуре ниже").
		String()
}

func msgWelcomeGuest() string {
	return formatting.Escape("👋 Привет! Я бот для управления бронированиями.\n\n" +
		"Чтобы получить доступ, свяжитесь с администратором.")
}

func msgMainMenu() string       { return formatting.Escape("Главное меню:") }
func msgAccessDenied() string   { return formatting.Escape("⛔ Нет доступа") }
func msgCancelled() string      { return formatting.Escape("❌ Действие отменено") }
func msgSessionExpired() string { return formatting.Escape("Сессия истекла") }

func msgStartWithAdd() string {
	return formatting.Escape(fmt.Sprintf("Начните с команды %q", BtnAddBooking))
}

func msgChooseService() string {
	return formatting.NewMessage().Text("🎯 ").Bold("Выберите услугу для бронирования:").String()
}

func msgEnterDate() string {
	return formatting.NewMessage().
		Text("📅 ").Bold("Введите дату бронирования:").Line().Line().
		Italic("Формат: ДД.ММ.ГГГГ (например: 25.12.2024)").
		String()
}

func msgBadDateFormat() string {
	return formatting.NewMessage().
		Text("❌ ").Bold("Неверный формат даты!").Line().Line().
		Text("Введите в формате: ").Bold("ДД.ММ.ГГГГ").Line().
		Text("Пример: ").Bold("25.12.2024").
		String()
}

func msgBadDate() string {
	return formatting.NewMessage().
		Text("❌ Неверная дата!").Line().
		Text("Такого дня нет в календаре. Введите дату в формате ").Bold("ДД.ММ.ГГГГ").
		String()
}

func msgEnterClientName() string {
	return formatting.NewMessage().Text("👤 ").Bold("Введите имя клиента:").String()
}

func msgEnterClientPhone() string {
	return formatting.NewMessage().
		Text("📞 ").Bold("Введите телефон клиента:").Line().Line().
		Italic("Пример: +375291234567").
		String()
}

func msgEnterClientAddress() string {
	return formatting.NewMessage().
		Text("📍 ").Bold("Введите адрес доставки:").Line().Line().
		Italic("Пример: г. Минск, ул. Пушкина, д. 10, кв. 5").
		String()
}

func msgCheckDraft(draft model.BookingDraft, loc *time.Location) string {
	return formatting.NewMessage().
		Text("📋 ").Bold("Проверьте данные:").Line().Line().
		Field("Услуга", draft.ServiceName).
		Field("Дата", formatting.FormatDate(draft.BookingDate.In(loc))).
		Field("Клиент", draft.ClientName).
		Field("Телефон", draft.ClientPhone).
		Field("Адрес", draft.ClientAddress).
		Line().
		Text("Все верно?").
		String()
}

func msgCreated(draft model.BookingDraft, bookingID int64, loc *time.Location) string {
	return formatting.NewMessage().
		Text("✅ ").Bold("Бронирование успешно создано!").Line().Line().
		Field("Услуга", draft.ServiceName).
		Field("Дата", formatting.FormatDate(draft.BookingDate.In(loc))).
		Field("Клиент", draft.ClientName).
		Field("Телефон", draft.ClientPhone).
		Field("Адрес", orDefault(draft.ClientAddress, notSpecified)).
		Bold("ID бронирования:").Text(" " + strconv.FormatInt(bookingID, 10)).
		String()
}

func msgCreateFailed(err error) string {
	return formatting.Escape("❌ Ошибка при создании бронирования:\n" + err.Error())
}

func msgEnterDeleteID() string {
	return formatting.NewMessage().
		Text("🗑️ ").Bold("Удаление бронирования").Line().Line().
		Text("Введите ID бронирования для удаления:").
		String()
}

func msgNotANumber() string {
	return formatting.Escape("❌ Введите число (ID бронирования)")
}

func msgBookingNotFound(id int64) string {
	return formatting.NewMessage().
		Text("❌ Бронирование с ID ").Bold(strconv.FormatInt(id, 10)).Text(" не найдено").
		String()
}

func msgCheckFailed() string {
	return formatting.Escape("❌ Ошибка при проверке бронирования")
}

func msgConfirmDelete(b *model.BookingDetails, loc *time.Location) string {
	m := formatting.NewMessage().Text("⚠️ ").Bold("Подтвердите удаление:").Line().Line()
	writeBookingFields(m, b, loc)
	return m.Line().Text("Удалить это бронирование?").String()
}

func msgDeleted(b *model.BookingDetails, loc *time.Location) string {
	m := formatting.NewMessage().Text("✅ ").Bold("Бронирование удалено!").Line().Line()
	writeBookingFields(m, b, loc)
	return m.Line().Text("Для обновления данных на сайте перезагрузите страницу").String()
}

func writeBookingFields(m *formatting.Message, b *model.BookingDetails, loc *time.Location) {
	m.Field("Услуга", b.ServiceName).
		Field("Дата", formatting.FormatDate(b.BookingDate.In(loc))).
		Field("Клиент", clientName(b)).
		Field("Телефон", orDefault(b.ClientPhone, "-"))
	if address := b.AddressOrEmpty(); address != "" {
		m.Field("Адрес", address)
	}
	m.Field("ID", strconv.FormatInt(b.ID, 10))
}

func msgVanished() string {
	return formatting.Escape("❌ Бронирование не найдено при удалении")
}

func msgDeleteFailed() string {
	return formatting.Escape("❌ Ошибка при удалении бронирования")
}

func msgDeleteCancelled() string {
	return formatting.Escape("❌ Удаление отменено")
}

func clientName(b *model.BookingDetails) string {
	name := orDefault(b.ClientFirstName, "-")
	if b.ClientLastName != "" {
		name += " " + b.ClientLastName
	}
	return name
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
