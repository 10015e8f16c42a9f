// Package calendar содержит чистые функции работы с датами календаря:
// канонические ключи дат, сетка месяца и выборка событий на день.
package calendar

import (
	"fmt"
	"time"

	"github.com/r044/date-calendar/models"
)

// Day представляет одну ячейку месячной сетки.
// Day == 0 означает пустую ведущую ячейку перед первым числом месяца.
type Day struct {
	Day  int    `json:"day"`            // число месяца, 0 для пустой ячейки
	Date string `json:"date,omitempty"` // ключ даты "yyyy-MM-dd", "" для пустой ячейки
}

// IsEmpty сообщает, является ли ячейка пустым заполнителем.
func (d Day) IsEmpty() bool {
	return d.Day == 0
}

// DateKey возвращает канонический ключ даты "yyyy-MM-dd".
// Ключ строится из локальных компонентов год/месяц/день, а не через
// сериализацию в UTC: иначе вечернее время в восточных часовых поясах
// сдвигало бы дату на день назад.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Today возвращает ключ сегодняшней локальной даты.
func Today() string {
	return DateKey(time.Now())
}

// ParseDateKey разбирает ключ даты "yyyy-MM-dd" со строгой проверкой формата.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDateKey: некорректный ключ даты %q: %w", s, err)
	}
	return t, nil
}

// ParseTimeOfDay разбирает время события: "HH:mm" или "HH:mm:ss".
func ParseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseTimeOfDay: некорректное время %q", s)
	}
	return t, nil
}

// EventStart собирает момент начала события из его даты и времени
// в локальном часовом поясе. Используется при экспорте в iCalendar.
func EventStart(dateKey, timeOfDay string) (time.Time, error) {
	d, err := ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	c, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.Local), nil
}

// MonthGrid строит сетку месяца: недели начинаются с понедельника.
// Перед первым числом идут пустые ячейки, их количество равно
// (ISO-день недели первого числа - 1) mod 7. Хвост до полной недели
// не дополняется. Для любого месяца число непустых ячеек равно числу
// дней в месяце.
func MonthGrid(year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	// time.Weekday: воскресенье = 0, понедельник = 1; сдвигаем к понедельник = 0.
	leading := (int(first.Weekday()) + 6) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]Day, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, Day{})
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, Day{
			Day:  d,
			Date: DateKey(time.Date(year, month, d, 0, 0, 0, 0, time.Local)),
		})
	}
	return cells
}

// EventsOnDate отбирает из полного списка события с точно совпадающей датой,
// сохраняя их относительный порядок. Список мал (календарь пары пользователей),
// поэтому достаточно линейного прохода без индексации.
func EventsOnDate(events []models.Event, dateKey string) []models.Event {
	var onDate []models.Event
	for _, event := range events {
		if event.Date == dateKey {
			onDate = append(onDate, event)
		}
	}
	return onDate
}

// FormatDuration форматирует длительность в минутах в человекочитаемый вид:
// "45 мин", "2 ч", "1 ч 30 мин".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%d мин", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}
