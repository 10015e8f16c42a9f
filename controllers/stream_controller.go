package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/r044/date-calendar/notify"
)

// ChangeHub является общим на весь сервер каналом уведомлений об изменениях
// таблицы событий. Мутирующие обработчики рассылают в него сигналы,
// EventsStreamHandler раздает их подключенным клиентам.
var ChangeHub = notify.NewHub()

// Интервал keep-alive комментариев в SSE-потоке, чтобы соединение
// не закрывалось прокси при долгом простое.
const streamPingInterval = 30 * time.Second

// EventsStreamHandler отдает поток Server-Sent Events с уведомлениями
// об изменениях. Сигнал не несет данных строки: клиент в ответ
// перечитывает весь список событий. Подписка освобождается ровно один
// раз при разрыве соединения.
// Пример URL: GET /api/events/stream
func EventsStreamHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Потоковая передача не поддерживается.")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes, dispose := ChangeHub.Subscribe()
	defer dispose()

	log.Printf("SSE: клиент подключился (%s), подписчиков: %d", r.RemoteAddr, ChangeHub.SubscriberCount())

	// Сразу подтверждаем соединение, чтобы EventSource перешел в состояние open.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	pingTicker := time.NewTicker(streamPingInterval)
	defer pingTicker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("SSE: клиент отключился (%s)", r.RemoteAddr)
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				log.Printf("SSE: ошибка кодирования уведомления: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-pingTicker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
