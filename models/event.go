package models

import "time"

// Event представляет одно свидание в общем календаре.
// Date хранится строкой "yyyy-MM-dd" и используется как точный ключ группировки,
// Time хранится строкой "HH:mm" или "HH:mm:ss" (клиент присылает оба варианта).
type Event struct {
	Id          int64   `json:"id" db:"Id"`
	Date        string  `json:"date" db:"Date"`         // "yyyy-MM-dd"
	Time        string  `json:"time" db:"Time"`         // "HH:mm" или "HH:mm:ss"
	Duration    int     `json:"duration" db:"Duration"` // длительность в минутах
	Description string  `json:"description" db:"Description"`
	ImageUrl    *string `json:"image_url,omitempty" db:"ImageUrl"`
	// Служебные отметки времени, клиенту не отдаются.
	CreatedAt time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt time.Time `json:"-" db:"UpdatedAt"`
}

// CreateEventRequest представляет тело POST-запроса на создание события.
// Id назначается сервером, клиент его не присылает.
type CreateEventRequest struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
	ImageUrl    *string `json:"image_url,omitempty"`
}

// Stats содержит агрегаты для панели статистики: сколько всего свиданий
// и на сколько различных дней они приходятся.
type Stats struct {
	Events int `json:"events" db:"Events"`
	Days   int `json:"days" db:"Days"`
}
