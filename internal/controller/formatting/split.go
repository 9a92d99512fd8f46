package formatting

import (
	"strings"
	"unicode/utf16"
)

// MaxMessageLength предел длины одного сообщения с запасом до лимита Telegram (4096 UTF-16 символов)
const MaxMessageLength = 4000

// Split склеивает блоки в сообщения не длиннее limit. Блок не разрывается:
// блок длиннее limit уходит отдельным сообщением.
func Split(blocks []string, limit int) []string {
	var (
		messages []string
		sb       strings.Builder
		size     int
	)
	for _, block := range blocks {
		n := textLength(block)
		if size > 0 && size+n > limit {
			messages = append(messages, sb.String())
			sb.Reset()
			size = 0
		}
		sb.WriteString(block)
		size += n
	}
	if size > 0 {
		messages = append(messages, sb.String())
	}
	return messages
}

func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
