package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/r044/date-calendar/calendar"
	"github.com/r044/date-calendar/data"
	"github.com/r044/date-calendar/models"
	"github.com/r044/date-calendar/notify"
)

// GetEventsHandler возвращает полный список событий,
// отсортированный по дате по возрастанию.
// Пример URL: GET /api/events
func GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := data.ListEvents()
	if err != nil {
		log.Printf("Ошибка при загрузке списка событий: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось загрузить события.")
		return
	}
	if events == nil {
		events = []models.Event{} // Клиент ожидает массив, а не null
	}
	respondJSON(w, http.StatusOK, events)
}

// CreateEventHandler создает новое событие.
// Ожидает POST-запрос с JSON-телом: date, time, duration, description, image_url.
// После успешной вставки рассылает уведомление об изменении всем подписчикам.
// Пример URL: POST /api/events
func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	// Валидация входных данных
	if _, err := calendar.ParseDateKey(req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "Некорректная дата. Ожидается формат yyyy-MM-dd.")
		return
	}
	if _, err := calendar.ParseTimeOfDay(req.Time); err != nil {
		respondError(w, http.StatusBadRequest, "Некорректное время. Ожидается формат HH:mm или HH:mm:ss.")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respondError(w, http.StatusBadRequest, "Описание не может быть пустым.")
		return
	}
	// Диапазон [30, 300] удерживает ползунок в форме; сервер отклоняет
	// только отрицательную длительность.
	if req.Duration < 0 {
		respondError(w, http.StatusBadRequest, "Длительность не может быть отрицательной.")
		return
	}

	event := &models.Event{
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Description: strings.TrimSpace(req.Description),
		ImageUrl:    normalizeImageUrl(req.ImageUrl),
	}

	eventID, err := data.CreateEvent(event)
	if err != nil {
		log.Printf("Ошибка при создании события: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось добавить свидание.")
		return
	}
	event.Id = eventID

	ChangeHub.Broadcast(notify.Change{Op: notify.OpInsert})
	respondJSON(w, http.StatusCreated, event)
}

// DeleteEventHandler удаляет событие по ID из пути запроса.
// Ошибка удаления всегда доводится до клиента: молчаливый no-op недопустим.
// Пример URL: DELETE /api/events/123
func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Некорректный ID события.")
		return
	}

	if err := data.DeleteEvent(eventID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Событие не найдено.")
			return
		}
		log.Printf("Ошибка при удалении события ID %d: %v", eventID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось удалить свидание.")
		return
	}

	ChangeHub.Broadcast(notify.Change{Op: notify.OpDelete})
	w.WriteHeader(http.StatusNoContent)
}

// GetStatsHandler возвращает агрегаты для панели статистики:
// общее число свиданий и число различных дней.
// Пример URL: GET /api/stats
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := data.GetStats()
	if err != nil {
		log.Printf("Ошибка при подсчете статистики: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось загрузить статистику.")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// normalizeImageUrl приводит пустую строку image_url к NULL в базе.
func normalizeImageUrl(imageUrl *string) *string {
	if imageUrl == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*imageUrl)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
