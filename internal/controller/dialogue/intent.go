package dialogue

import (
	"strings"

	"github.com/Freeeeeet/rental_booking/internal/model"
)

// IntentKind что пользователь хотел сказать сообщением
type IntentKind int

const (
	IntentText IntentKind = iota // произвольный текст, ввод для текущего шага
	IntentStart
	IntentBack
	IntentListAll
	IntentListToday
	IntentCreate
	IntentDelete
	IntentClients
	IntentStats
	IntentService
	IntentConfirm
	IntentCancel
	IntentYes
	IntentNo
)

var intentNames = map[IntentKind]string{
	IntentText:      "text",
	IntentStart:     "start",
	IntentBack:      "back",
	IntentListAll:   "list_all",
	IntentListToday: "list_today",
	IntentCreate:    "create",
	IntentDelete:    "delete",
	IntentClients:   "clients",
	IntentStats:     "stats",
	IntentService:   "service",
	IntentConfirm:   "confirm",
	IntentCancel:    "cancel",
	IntentYes:       "yes",
	IntentNo:        "no",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent разобранное сообщение; Service заполнен только для IntentService
type Intent struct {
	Kind    IntentKind
	Text    string
	Service model.ServiceInfo
}

var buttonIntents = map[string]IntentKind{
	BtnAllBookings:    IntentListAll,
	BtnToday:          IntentListToday,
	BtnAddBooking:     IntentCreate,
	BtnDeleteBookings: IntentDelete,
	BtnClients:        IntentClients,
	BtnStats:          IntentStats,
	BtnBack:           IntentBack,
	BtnConfirm:        IntentConfirm,
	BtnCancel:         IntentCancel,
	BtnYes:            IntentYes,
	BtnNo:             IntentNo,
}

// Classify сопоставляет текст сообщения с командой меню; всё остальное считается вводом
func Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)

	if isCommand(trimmed, CmdStart) {
		return Intent{Kind: IntentStart, Text: text}
	}
	if kind, ok := buttonIntents[trimmed]; ok {
		return Intent{Kind: kind, Text: text}
	}
	if svc, ok := model.ServiceByLabel(trimmed); ok {
		return Intent{Kind: IntentService, Text: text, Service: svc}
	}
	return Intent{Kind: IntentText, Text: text}
}

// isCommand поддерживает "/start", "/start@bot_name" и "/start payload"
func isCommand(text, command string) bool {
	if !strings.HasPrefix(text, command) {
		return false
	}
	rest := text[len(command):]
	return rest == "" || rest[0] == '@' || rest[0] == ' '
}
