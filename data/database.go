package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для побочных эффектов (регистрации драйвера)
)

var DB *sqlx.DB // Глобальная переменная для пула подключений к БД календаря

// InitDB инициализирует подключение к базе данных SQLite по указанному пути
// и применяет схему. Директория для файла БД создается при необходимости.
func InitDB(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("InitDB: не удалось создать директорию %s: %w", dir, err)
		}
	}

	var err error
	DB, err = sqlx.Connect("sqlite3", dbPath+"?_foreign_keys=on") // Включаем поддержку внешних ключей
	if err != nil {
		return fmt.Errorf("InitDB: не удалось подключиться к базе данных: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("InitDB: не удалось выполнить ping базы данных: %w", err)
	}
	log.Printf("Успешное подключение к базе данных: %s", dbPath)

	if _, err = DB.Exec(GetSchema()); err != nil {
		return fmt.Errorf("InitDB: не удалось применить схему: %w", err)
	}
	log.Println("Схема базы данных применена успешно.")

	return nil
}

// CloseDB закрывает пул подключений к базе данных.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
