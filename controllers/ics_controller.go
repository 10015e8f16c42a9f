package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/r044/date-calendar/calendar"
	"github.com/r044/date-calendar/data"
)

// Длительность события в экспорте, если в записи она не указана.
const defaultExportDuration = 60 * time.Minute

// ExportCalendarHandler экспортирует все события в формате iCalendar,
// чтобы общий календарь можно было подключить подпиской в календаре телефона.
// Пример URL: GET /api/calendar.ics
func ExportCalendarHandler(w http.ResponseWriter, r *http.Request) {
	events, err := data.ListEvents()
	if err != nil {
		log.Printf("Ошибка при загрузке событий для экспорта: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось экспортировать календарь.")
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, event := range events {
		start, err := calendar.EventStart(event.Date, event.Time)
		if err != nil {
			// Некорректная строка в базе не должна ломать весь экспорт.
			log.Printf("Экспорт: пропущено событие ID %d: %v", event.Id, err)
			continue
		}

		duration := time.Duration(event.Duration) * time.Minute
		if duration <= 0 {
			duration = defaultExportDuration
		}

		vevent := cal.AddEvent(fmt.Sprintf("event-%d@date-calendar", event.Id))
		vevent.SetCreatedTime(event.CreatedAt)
		vevent.SetDtStampTime(event.UpdatedAt)
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(duration))
		vevent.SetSummary(event.Description)
		vevent.SetDescription("Длительность: " + calendar.FormatDuration(event.Duration))
		if event.ImageUrl != nil {
			vevent.SetURL(*event.ImageUrl)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="date-calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		log.Printf("Ошибка при записи iCalendar-ответа: %v", err)
	}
}
