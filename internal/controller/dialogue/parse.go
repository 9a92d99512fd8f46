package dialogue

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrDateFormat текст не похож на Д.М.ГГГГ
	ErrDateFormat = errors.New("date does not match DD.MM.YYYY")
	// ErrDateInvalid формат верный, но такой даты нет в календаре
	ErrDateInvalid = errors.New("date does not exist")
	// ErrInvalidID идентификатор не является положительным целым числом
	ErrInvalidID = errors.New("id must be a positive integer")
)

var datePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)

// ParseDate разбирает Д.М.ГГГГ или ДД.ММ.ГГГГ в полночь указанного часового пояса
func ParseDate(text string, loc *time.Location) (time.Time, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, ErrDateFormat
	}

	// Группы состоят только из цифр, Atoi не может вернуть ошибку
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, ErrDateInvalid
	}

	return date, nil
}

// ParseID разбирает десятичный идентификатор записи
func ParseID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
