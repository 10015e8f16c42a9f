package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r044/date-calendar/data"
	"github.com/r044/date-calendar/models"
	"github.com/r044/date-calendar/notify"
)

// newTestRouter собирает маршрутизатор с той же регистрацией, что и main.
func newTestRouter() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/events", GetEventsHandler).Methods(http.MethodGet)
	api.HandleFunc("/events", CreateEventHandler).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}", DeleteEventHandler).Methods(http.MethodDelete)
	api.HandleFunc("/calendar", GetCalendarHandler).Methods(http.MethodGet)
	api.HandleFunc("/calendar.ics", ExportCalendarHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats", GetStatsHandler).Methods(http.MethodGet)
	return router
}

func initTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, data.InitDB(dbPath))
	t.Cleanup(func() { data.CloseDB() })
}

func postEvent(t *testing.T, router *mux.Router, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func listEvents(t *testing.T, router *mux.Router) []models.Event {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	return events
}

func TestCreateEvent_Roundtrip(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	// Подписываемся до мутации, чтобы поймать уведомление.
	changes, dispose := ChangeHub.Subscribe()
	defer dispose()

	rr := postEvent(t, router, map[string]interface{}{
		"date":        "2024-03-15",
		"time":        "19:00",
		"duration":    120,
		"description": "Ужин при свечах",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Greater(t, created.Id, int64(0))
	assert.Equal(t, "2024-03-15", created.Date)

	// Последующий список содержит новую запись.
	events := listEvents(t, router)
	require.Len(t, events, 1)
	assert.Equal(t, created.Id, events[0].Id)

	// Успешная вставка рассылает уведомление об изменении.
	select {
	case change := <-changes:
		assert.Equal(t, notify.OpInsert, change.Op)
	case <-time.After(time.Second):
		t.Fatal("уведомление о вставке не разослано")
	}
}

func TestCreateEvent_EmptyDescriptionRejected(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	rr := postEvent(t, router, map[string]interface{}{
		"date":        "2024-03-15",
		"time":        "19:00",
		"duration":    120,
		"description": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// До базы запрос не дошел.
	assert.Empty(t, listEvents(t, router))
}

func TestCreateEvent_Validation(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"некорректная дата", map[string]interface{}{
			"date": "15.03.2024", "time": "19:00", "duration": 60, "description": "кино"}},
		{"некорректное время", map[string]interface{}{
			"date": "2024-03-15", "time": "вечером", "duration": 60, "description": "кино"}},
		{"отрицательная длительность", map[string]interface{}{
			"date": "2024-03-15", "time": "19:00", "duration": -30, "description": "кино"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postEvent(t, router, tc.payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	assert.Empty(t, listEvents(t, router))
}

func TestDeleteEvent(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	rr := postEvent(t, router, map[string]interface{}{
		"date": "2024-03-15", "time": "19:00", "duration": 60, "description": "кино"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	changes, dispose := ChangeHub.Subscribe()
	defer dispose()

	req := httptest.NewRequest(http.MethodDelete, "/api/events/"+strconv.FormatInt(created.Id, 10), nil)
	del := httptest.NewRecorder()
	router.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	// Последующий список запись не содержит.
	assert.Empty(t, listEvents(t, router))

	select {
	case change := <-changes:
		assert.Equal(t, notify.OpDelete, change.Op)
	case <-time.After(time.Second):
		t.Fatal("уведомление об удалении не разослано")
	}

	// Повторное удаление возвращает 404 с телом ошибки, а не молчаливый no-op.
	req = httptest.NewRequest(http.MethodDelete, "/api/events/"+strconv.FormatInt(created.Id, 10), nil)
	again := httptest.NewRecorder()
	router.ServeHTTP(again, req)
	assert.Equal(t, http.StatusNotFound, again.Code)
	assert.Contains(t, again.Body.String(), "error")
}

func TestGetCalendar_March2024(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	// Два события на один день: в ячейке они идут в порядке добавления.
	first := postEvent(t, router, map[string]interface{}{
		"date": "2024-03-15", "time": "18:00", "duration": 60, "description": "ужин"})
	require.Equal(t, http.StatusCreated, first.Code)
	second := postEvent(t, router, map[string]interface{}{
		"date": "2024-03-15", "time": "21:00", "duration": 60, "description": "кино"})
	require.Equal(t, http.StatusCreated, second.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?year=2024&month=3", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var cal calendarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cal))
	assert.Equal(t, 2024, cal.Year)
	assert.Equal(t, 3, cal.Month)

	// 1 марта 2024 приходится на пятницу: 4 ведущих пустых ячейки, затем 31 день.
	require.Equal(t, 35, len(cal.Cells))
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, cal.Cells[i].Day, "ячейка %d должна быть пустой", i)
	}
	assert.Equal(t, 1, cal.Cells[4].Day)
	assert.Equal(t, "2024-03-01", cal.Cells[4].Date)

	day15 := cal.Cells[4+14]
	require.Equal(t, 15, day15.Day)
	require.Len(t, day15.Events, 2)
	assert.Equal(t, "ужин", day15.Events[0].Description, "первым идет событие, добавленное раньше")
	assert.Equal(t, "кино", day15.Events[1].Description)

	// На день без событий список пуст.
	assert.Empty(t, cal.Cells[4+1].Events)
}

func TestGetCalendar_BadMonth(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/calendar?year=2024&month=13", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetStats(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	for _, payload := range []map[string]interface{}{
		{"date": "2024-03-15", "time": "18:00", "duration": 60, "description": "ужин"},
		{"date": "2024-03-15", "time": "21:00", "duration": 60, "description": "кино"},
		{"date": "2024-04-01", "time": "12:00", "duration": 60, "description": "пикник"},
	} {
		rr := postEvent(t, router, payload)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Events)
	assert.Equal(t, 2, stats.Days)
}

func TestExportCalendar_ICS(t *testing.T) {
	initTestDB(t)
	router := newTestRouter()

	rr := postEvent(t, router, map[string]interface{}{
		"date": "2024-03-15", "time": "19:00", "duration": 120, "description": "Ужин при свечах"})
	require.Equal(t, http.StatusCreated, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar.ics", nil)
	ics := httptest.NewRecorder()
	router.ServeHTTP(ics, req)
	require.Equal(t, http.StatusOK, ics.Code)

	body := ics.Body.String()
	assert.Contains(t, ics.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "Ужин при свечах")
	assert.Contains(t, body, "END:VCALENDAR")
}
