package formatting

import "time"

// FormatDate форматирует дату как ДД.ММ.ГГГГ
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatClock время с секундами
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}
