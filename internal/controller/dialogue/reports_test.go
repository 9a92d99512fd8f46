package dialogue

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/Freeeeeet/rental_booking/internal/controller/formatting"
	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAll_GroupsInCatalogOrder(t *testing.T) {
	h := newHarness()
	washer := h.backend.seed(model.Catalog[2].Name, time.Date(2025, 3, 7, 0, 0, 0, 0, minsk))
	other := h.backend.seed("Химчистка ковров", time.Date(2025, 3, 8, 0, 0, 0, 0, minsk))
	vacuum := h.backend.seed(model.Catalog[0].Name, time.Date(2025, 3, 5, 0, 0, 0, 0, minsk))

	resp := h.send(adminID, BtnAllBookings)
	require.Len(t, resp, 1)
	text := resp[0].Text
	assert.Equal(t, KeyboardBack, resp[0].Keyboard)

	iVacuum := strings.Index(text, formatting.Escape(model.Catalog[0].Name))
	iWasher := strings.Index(text, formatting.Escape(model.Catalog[2].Name))
	iOther := strings.Index(text, otherServicesTitle)
	require.NotEqual(t, -1, iVacuum)
	require.NotEqual(t, -1, iWasher)
	require.NotEqual(t, -1, iOther)
	assert.Less(t, iVacuum, iWasher)
	assert.Less(t, iWasher, iOther)
	assert.NotContains(t, text, formatting.Escape(model.Catalog[1].Name))

	for _, b := range []*model.BookingDetails{washer, other, vacuum} {
		assert.Contains(t, text, "*"+strconv.FormatInt(b.ID, 10)+"*")
	}
	assert.Contains(t, text, `05\.03\.2025`)
}

func TestReportAll_SplitsLongReport(t *testing.T) {
	h := newHarness()
	address := strings.Repeat("ул. Длинная улица, ", 5)
	var ids []int64
	for i := 0; i < 60; i++ {
		b := h.backend.seed(model.Catalog[i%3].Name, time.Date(2025, 3, 1+i%28, 0, 0, 0, 0, minsk))
		b.Address = &address
		ids = append(ids, b.ID)
	}

	resp := h.send(adminID, BtnAllBookings)
	require.Greater(t, len(resp), 1)

	var all strings.Builder
	for i, r := range resp {
		assert.LessOrEqual(t, len(utf16.Encode([]rune(r.Text))), formatting.MaxMessageLength)
		if i == len(resp)-1 {
			assert.Equal(t, KeyboardBack, r.Keyboard)
		} else {
			assert.Equal(t, KeyboardNone, r.Keyboard)
		}
		all.WriteString(r.Text)
	}
	for _, id := range ids {
		assert.Equal(t, 1, strings.Count(all.String(), "*"+strconv.FormatInt(id, 10)+"*"))
	}
	assert.Equal(t, 1, strings.Count(all.String(), formatting.Escape(model.Catalog[0].Name)))
}

func TestReportAll_Empty(t *testing.T) {
	h := newHarness()

	resp := h.send(adminID, BtnAllBookings)

	assert.Contains(t, resp[0].Text, "Нет активных бронирований")
}

func TestReportAll_EscapesClientData(t *testing.T) {
	h := newHarness()
	b := h.backend.seed(model.Catalog[0].Name, time.Date(2025, 3, 5, 0, 0, 0, 0, minsk))
	b.ClientFirstName = "Ivan_[admin]"
	address := "ул. Ленина (д. 5)"
	b.Address = &address

	resp := h.send(adminID, BtnAllBookings)

	assert.Contains(t, resp[0].Text, `Ivan\_\[admin\]`)
	assert.Contains(t, resp[0].Text, `ул\. Ленина \(д\. 5\)`)
}

func TestReportClients_EscapesNames(t *testing.T) {
	h := newHarness()

	resp := h.send(adminID, BtnClients)

	require.Len(t, resp, 1)
	assert.Contains(t, resp[0].Text, `Ivan\_Petrov`)
	assert.Contains(t, resp[0].Text, `client\_x@karcher\.by`)
	assert.Contains(t, resp[0].Text, "Бронирований: 2")
}

func TestReportToday_EmptyDay(t *testing.T) {
	h := newHarness()

	resp := h.send(adminID, BtnToday)

	assert.Contains(t, resp[0].Text, `Сегодня \(05\.03\.2025\) нет бронирований`)
}

func TestReportStats(t *testing.T) {
	h := newHarness()
	h.backend.seed(model.Catalog[0].Name, time.Date(2025, 3, 5, 0, 0, 0, 0, minsk))

	resp := h.send(adminID, BtnStats)

	assert.Contains(t, resp[0].Text, "*Сегодня:* 1")
	assert.Contains(t, resp[0].Text, "*Этот месяц:* 3")
	assert.Contains(t, resp[0].Text, "*Всего клиентов:* 1")
}

type failingBackend struct{ *fakeBackend }

func (failingBackend) ListByService(context.Context) ([]*model.BookingDetails, error) {
	return nil, errors.New("db down")
}

func TestReportAll_Error(t *testing.T) {
	h := newHarness()
	h.engine.bookings = failingBackend{h.backend}

	resp := h.send(adminID, BtnAllBookings)

	assert.Contains(t, resp[0].Text, "Ошибка при получении данных")
	assert.Equal(t, KeyboardBack, resp[0].Keyboard)
}
