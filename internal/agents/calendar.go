package agents

import (
	"context"
	"strings"
	"time"
)

const calendarFallback = "Não entendi o que você quer fazer com agenda. Pode reformular?"

const dateFormat = "2006-01-02"

// CalendarHandler maps free text to delivery schedule queries
type CalendarHandler struct {
	backend Backend
	now     func() time.Time
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(be Backend) *CalendarHandler {
	return &CalendarHandler{backend: be, now: time.Now}
}

// Handle detects the intent of the message and executes it. A resolved
// relative date ("hoje", "amanhã", a weekday) narrows the listing to that
// single day; otherwise the next seven days are listed.
func (h *CalendarHandler) Handle(ctx context.Context, message string) Result {
	lower := strings.ToLower(message)

	if !strings.Contains(lower, "agenda") && !strings.Contains(lower, "entreg") {
		return Result{Action: "consulta", Message: calendarFallback}
	}

	today := h.now()
	target, ok := resolveDay(lower, today)
	if ok {
		day := target.Format(dateFormat)
		slots, err := h.backend.ListSchedule(ctx, day, day)
		if err != nil {
			return Result{Action: "listar_dia", Err: err.Error()}
		}
		return Result{Action: "listar_dia", Data: slots, Day: day}
	}

	slots, err := h.backend.ListSchedule(ctx, today.Format(dateFormat), today.AddDate(0, 0, 7).Format(dateFormat))
	if err != nil {
		return Result{Action: "listar", Err: err.Error()}
	}
	return Result{Action: "listar", Data: slots}
}

// resolveDay maps relative date words to a concrete day
func resolveDay(lower string, today time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(lower, "hoje"):
		return today, true
	case strings.Contains(lower, "amanhã") || strings.Contains(lower, "amanha"):
		return today.AddDate(0, 0, 1), true
	case strings.Contains(lower, "sexta"):
		return nextWeekday(today, 4), true
	case strings.Contains(lower, "sábado") || strings.Contains(lower, "sabado"):
		return nextWeekday(today, 5), true
	}
	return time.Time{}, false
}

// nextWeekday returns the next occurrence of the given weekday, counting
// Monday as 0; when it falls on today, the occurrence one week ahead is
// returned instead.
func nextWeekday(today time.Time, weekday int) time.Time {
	current := (int(today.Weekday()) + 6) % 7
	ahead := ((weekday - current) % 7 + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead)
}
