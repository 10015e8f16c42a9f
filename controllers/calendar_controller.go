package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/r044/date-calendar/calendar"
	"github.com/r044/date-calendar/data"
	"github.com/r044/date-calendar/models"
)

// calendarCellDTO представляет одну ячейку месячной сетки в ответе API.
// day == 0 означает пустую ведущую ячейку.
type calendarCellDTO struct {
	Day     int            `json:"day"`
	Date    string         `json:"date,omitempty"`
	IsToday bool           `json:"is_today,omitempty"`
	Events  []models.Event `json:"events,omitempty"`
}

// calendarResponse представляет ответ GET /api/calendar.
type calendarResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Today string            `json:"today"`
	Cells []calendarCellDTO `json:"cells"`
}

// GetCalendarHandler строит сетку указанного месяца и раскладывает по ячейкам
// события этого месяца. Без параметров возвращается текущий месяц.
// Пример URL: GET /api/calendar?year=2024&month=3
func GetCalendarHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	q := r.URL.Query()

	year := now.Year()
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Некорректный год.")
			return
		}
		year = parsed
	}

	month := int(now.Month())
	if raw := q.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			respondError(w, http.StatusBadRequest, "Некорректный месяц. Ожидается число от 1 до 12.")
			return
		}
		month = parsed
	}

	events, err := data.ListEvents()
	if err != nil {
		log.Printf("Ошибка при загрузке событий для календаря: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось загрузить календарь.")
		return
	}

	today := calendar.Today()
	grid := calendar.MonthGrid(year, time.Month(month))

	cells := make([]calendarCellDTO, 0, len(grid))
	for _, day := range grid {
		if day.IsEmpty() {
			cells = append(cells, calendarCellDTO{})
			continue
		}
		cells = append(cells, calendarCellDTO{
			Day:     day.Day,
			Date:    day.Date,
			IsToday: day.Date == today,
			Events:  calendar.EventsOnDate(events, day.Date),
		})
	}

	respondJSON(w, http.StatusOK, calendarResponse{
		Year:  year,
		Month: month,
		Today: today,
		Cells: cells,
	})
}
