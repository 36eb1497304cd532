package agents

import (
	"context"
	"testing"
	"time"

	"docildos/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, so Friday is two days ahead and Saturday three
var wednesday = time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)

func TestCalendarToday(t *testing.T) {
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "entregas de hoje")

	assert.Equal(t, "listar_dia", res.Action)
	assert.Equal(t, "2026-09-02", res.Day)
	require.Len(t, fake.scheduleRanges, 1)
	assert.Equal(t, [2]string{"2026-09-02", "2026-09-02"}, fake.scheduleRanges[0])
}

func TestCalendarTomorrow(t *testing.T) {
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "agenda de amanhã")

	assert.Equal(t, "listar_dia", res.Action)
	assert.Equal(t, "2026-09-03", res.Day)
}

func TestCalendarNextFriday(t *testing.T) {
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "o que entrega na sexta?")

	assert.Equal(t, "listar_dia", res.Action)
	assert.Equal(t, "2026-09-04", res.Day)
}

func TestCalendarNextSaturday(t *testing.T) {
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "agenda de sábado")

	assert.Equal(t, "listar_dia", res.Action)
	assert.Equal(t, "2026-09-05", res.Day)
}

func TestCalendarWeekdayOnSameDayMovesOneWeekAhead(t *testing.T) {
	friday := time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC)
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(friday)

	res := h.Handle(context.Background(), "entregas de sexta")

	assert.Equal(t, "2026-09-11", res.Day)
}

func TestCalendarDefaultWeekRange(t *testing.T) {
	fake := &fakeBackend{}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "como está a agenda?")

	assert.Equal(t, "listar", res.Action)
	assert.Empty(t, res.Day)
	require.Len(t, fake.scheduleRanges, 1)
	assert.Equal(t, [2]string{"2026-09-02", "2026-09-09"}, fake.scheduleRanges[0])
}

func TestCalendarDegradesBackendError(t *testing.T) {
	fake := &fakeBackend{
		listScheduleFn: func(string, string) ([]backend.DeliverySlot, error) {
			return nil, assert.AnError
		},
	}
	h := NewCalendarHandler(fake)
	h.now = fixedNow(wednesday)

	res := h.Handle(context.Background(), "entregas de hoje")

	assert.NotEmpty(t, res.Err)
}

func TestCalendarFallback(t *testing.T) {
	h := NewCalendarHandler(&fakeBackend{})

	res := h.Handle(context.Background(), "me conta uma piada")

	assert.Equal(t, "consulta", res.Action)
	assert.Equal(t, calendarFallback, res.Message)
}
