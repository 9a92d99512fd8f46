package formatting

import "strings"

// markdownSpecial символы, которые MarkdownV2 требует экранировать
const markdownSpecial = "_*[]()~`>#+-=|{}.!\\"

// Escape экранирует спецсимволы MarkdownV2 посимвольно
func Escape(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecial, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Bold жирный текст с экранированием содержимого
func Bold(text string) string {
	return "*" + Escape(text) + "*"
}

// Italic курсив с экранированием содержимого
func Italic(text string) string {
	return "_" + Escape(text) + "_"
}

// Message собирает сообщение в MarkdownV2, экранируя весь пользовательский и статический текст
type Message struct {
	sb strings.Builder
}

func NewMessage() *Message {
	return &Message{}
}

func (m *Message) Text(text string) *Message {
	m.sb.WriteString(Escape(text))
	return m
}

func (m *Message) Bold(text string) *Message {
	m.sb.WriteString(Bold(text))
	return m
}

func (m *Message) Italic(text string) *Message {
	m.sb.WriteString(Italic(text))
	return m
}

// Field строка вида "*Метка:* значение"
func (m *Message) Field(label, value string) *Message {
	return m.Bold(label + ":").Text(" " + value).Line()
}

func (m *Message) Line() *Message {
	m.sb.WriteByte('\n')
	return m
}

func (m *Message) String() string {
	return m.sb.String()
}
