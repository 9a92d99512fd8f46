package dialogue

// Подписи кнопок клавиатуры
const (
	BtnAllBookings    = "📋 Все бронирования"
	BtnToday          = "📅 На сегодня"
	BtnAddBooking     = "➕ Добавить бронирование"
	BtnDeleteBookings = "🗑️ Удалить брони"
	BtnClients        = "👥 Клиенты"
	BtnStats          = "📊 Статистика"
	BtnBack           = "↩️ Назад"
	BtnConfirm        = "✅ Подтвердить"
	BtnCancel         = "❌ Отменить"
	BtnYes            = "✅ Да"
	BtnNo             = "❌ Нет"

	CmdStart = "/start"
)

// Keyboard какую клавиатуру показать вместе с ответом
type Keyboard int

const (
	KeyboardNone     Keyboard = iota // клавиатура не меняется
	KeyboardMain                     // главное меню
	KeyboardServices                 // выбор услуги
	KeyboardConfirm                  // подтвердить / отменить
	KeyboardYesNo                    // да / нет
	KeyboardBack                     // только "назад"
	KeyboardRemove                   // убрать клавиатуру, ожидается ввод текста
)

// Response одно сообщение бота в MarkdownV2
type Response struct {
	Text     string
	Keyboard Keyboard
}
