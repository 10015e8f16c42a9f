// Package notify реализует канал уведомлений об изменениях таблицы событий.
// Сигнал нарочно не несет данных измененной строки: подписчик в ответ
// перечитывает весь список, поэтому пропуск отдельного сигнала безвреден.
package notify

import "sync"

// Operation обозначает тип изменения, породившего уведомление.
type Operation string

const (
	OpInsert Operation = "insert"
	OpDelete Operation = "delete"
	// OpTick рассылается по расписанию в полночь, чтобы подключенные
	// клиенты обновили подсветку "сегодня".
	OpTick Operation = "tick"
)

// Change представляет одно уведомление об изменении.
type Change struct {
	Op Operation `json:"op"`
}

// Буфер канала подписчика. Сигналы схлопываемы (реакция на любой из них
// одна и та же: полная перезагрузка списка), поэтому при переполнении
// буфера лишний сигнал просто отбрасывается.
const subscriberBuffer = 8

// Hub раздает уведомления всем текущим подписчикам.
type Hub struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]chan Change
}

// NewHub создает пустой Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]chan Change)}
}

// Subscribe регистрирует нового подписчика. Возвращает канал уведомлений
// и функцию освобождения подписки. Функцию освобождения безопасно вызывать
// несколько раз: подписка снимается ровно один раз, после чего канал
// закрывается.
func (h *Hub) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	dispose := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, dispose
}

// Broadcast рассылает уведомление всем подписчикам, не блокируясь:
// если буфер подписчика заполнен, сигнал для него отбрасывается.
func (h *Hub) Broadcast(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- change:
		default:
			// Подписчик не успевает читать, сигнал схлопывается.
		}
	}
}

// SubscriberCount возвращает число активных подписчиков.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
