package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/r044/date-calendar/models"
)

// CreateEvent создает новое событие в календаре.
// Возвращает ID созданной записи.
func CreateEvent(event *models.Event) (int64, error) {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	query := `INSERT INTO Events (Date, Time, Duration, Description, ImageUrl, CreatedAt, UpdatedAt)
	          VALUES (:Date, :Time, :Duration, :Description, :ImageUrl, :CreatedAt, :UpdatedAt)`

	result, err := DB.NamedExec(query, event)
	if err != nil {
		return 0, fmt.Errorf("CreateEvent: ошибка при вставке события: %w", err)
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateEvent: ошибка при получении LastInsertId: %w", err)
	}
	log.Printf("Создано событие с ID: %d на дату: %s", newID, event.Date)
	return newID, nil
}

// ListEvents извлекает все события, отсортированные по дате по возрастанию.
// Id используется как вторичный ключ сортировки, чтобы порядок событий
// одного дня был стабильным (порядок добавления).
func ListEvents() ([]models.Event, error) {
	var events []models.Event
	query := `SELECT Id, Date, Time, Duration, Description, ImageUrl, CreatedAt, UpdatedAt
	          FROM Events ORDER BY Date ASC, Id ASC`
	err := DB.Select(&events, query)
	if err != nil {
		return nil, fmt.Errorf("ListEvents: ошибка при получении списка событий: %w", err)
	}
	return events, nil
}

// GetEventByID извлекает событие по его ID.
func GetEventByID(id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT Id, Date, Time, Duration, Description, ImageUrl, CreatedAt, UpdatedAt
	          FROM Events WHERE Id = ?`
	err := DB.Get(event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetEventByID: ошибка при получении события ID %d: %w", id, err)
	}
	return event, nil
}

// DeleteEvent удаляет событие по ID.
// Возвращает sql.ErrNoRows, если события с таким ID не существует.
func DeleteEvent(id int64) error {
	query := `DELETE FROM Events WHERE Id = ?`
	result, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("DeleteEvent: ошибка при удалении события ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Printf("DeleteEvent: Событие с ID %d не найдено для удаления.", id)
		return sql.ErrNoRows
	}
	log.Printf("Удалено событие с ID: %d", id)
	return nil
}

// GetStats возвращает агрегаты для панели статистики:
// общее число событий и число различных дат.
func GetStats() (*models.Stats, error) {
	stats := &models.Stats{}
	query := `SELECT COUNT(*) AS Events, COUNT(DISTINCT Date) AS Days FROM Events`
	err := DB.Get(stats, query)
	if err != nil {
		return nil, fmt.Errorf("GetStats: ошибка при подсчете статистики: %w", err)
	}
	return stats, nil
}
