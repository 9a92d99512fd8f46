package model

import (
	"sort"
	"strings"
)

// ServiceKind одна из услуг проката
type ServiceKind string

const (
	ServiceVacuum ServiceKind = "vacuum"
	ServiceSteam  ServiceKind = "steam"
	ServiceWasher ServiceKind = "washer"
)

// ServiceInfo описание услуги: подпись кнопки, полное название и ключевое слово для сортировки
type ServiceInfo struct {
	Kind     ServiceKind
	Label    string
	Name     string
	Emoji    string
	Keyword  string
	DayLimit int64
}

// Catalog услуги в порядке отображения
var Catalog = []ServiceInfo{
	{
		Kind:     ServiceVacuum,
		Label:    "🧹 Пылесос Puzzi 8/1 C",
		Name:     "Аренда пылесоса Karcher Puzzi 8/1 C",
		Emoji:    "🧹",
		Keyword:  "пылесоса",
		DayLimit: 2,
	},
	{
		Kind:     ServiceSteam,
		Label:    "💨 Пароочиститель SC 4",
		Name:     "Аренда пароочистителя Karcher SC 4 Deluxe",
		Emoji:    "💨",
		Keyword:  "пароочистителя",
		DayLimit: 1,
	},
	{
		Kind:     ServiceWasher,
		Label:    "💦 Мойка K 5",
		Name:     "Аренда мойки высокого давления Karcher K 5 Full Control",
		Emoji:    "💦",
		Keyword:  "мойки",
		DayLimit: 1,
	},
}

// DefaultDayLimit лимит для услуг вне каталога
const DefaultDayLimit = 1

// OtherServiceRank ранг услуг, не попавших ни под одно ключевое слово
var OtherServiceRank = len(Catalog) + 1

// ServiceByLabel ищет услугу по подписи кнопки
func ServiceByLabel(label string) (ServiceInfo, bool) {
	for _, s := range Catalog {
		if s.Label == label {
			return s, true
		}
	}
	return ServiceInfo{}, false
}

// ServiceByName ищет услугу по полному названию
func ServiceByName(name string) (ServiceInfo, bool) {
	for _, s := range Catalog {
		if s.Name == name {
			return s, true
		}
	}
	return ServiceInfo{}, false
}

// ServiceRank порядок услуги по ключевому слову: пылесос < пароочиститель < мойка < остальное
func ServiceRank(name string) int {
	for i, s := range Catalog {
		if strings.Contains(name, s.Keyword) {
			return i + 1
		}
	}
	return OtherServiceRank
}

// ServiceEmoji значок услуги по ключевому слову, для неизвестных услуг значок мойки
func ServiceEmoji(name string) string {
	for _, s := range Catalog {
		if strings.Contains(name, s.Keyword) {
			return s.Emoji
		}
	}
	return Catalog[len(Catalog)-1].Emoji
}

// DayLimit лимит бронирований услуги в день
func DayLimit(name string) int64 {
	if s, ok := ServiceByName(name); ok {
		return s.DayLimit
	}
	return DefaultDayLimit
}

// SortBookings сортирует по рангу услуги, затем по дате бронирования (новые сначала)
func SortBookings(bookings []*BookingDetails) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ri, rj := ServiceRank(bookings[i].ServiceName), ServiceRank(bookings[j].ServiceName)
		if ri != rj {
			return ri < rj
		}
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
}
