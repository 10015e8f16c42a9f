// Package config загружает конфигурацию сервера из YAML-файла.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config содержит настройки сервера календаря.
type Config struct {
	Listen     string `yaml:"listen"`      // адрес HTTP-сервера, по умолчанию ":8080"
	DBPath     string `yaml:"db_path"`     // путь к файлу SQLite
	StaticDir  string `yaml:"static_dir"`  // директория со статикой одностраничного интерфейса
	UploadsDir string `yaml:"uploads_dir"` // директория для загруженных картинок
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		Listen:     ":8080",
		DBPath:     "./datecal.db",
		StaticDir:  "./static",
		UploadsDir: "./uploads",
	}
}

// Load читает конфигурацию из файла по указанному пути.
// Отсутствующий файл не является ошибкой: возвращаются значения по умолчанию.
// Не заданные в файле поля также заполняются значениями по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("Load: не удалось прочитать файл конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("Load: не удалось разобрать файл конфигурации %s: %w", path, err)
	}

	def := Default()
	if cfg.Listen == "" {
		cfg.Listen = def.Listen
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = def.StaticDir
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = def.UploadsDir
	}
	return cfg, nil
}
