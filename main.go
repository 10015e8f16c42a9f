package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/r044/date-calendar/config"
	"github.com/r044/date-calendar/controllers"
	"github.com/r044/date-calendar/data"
	"github.com/r044/date-calendar/notify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Инициализация базы данных
	if err := data.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("Не удалось инициализировать базу данных: %v", err)
	}
	defer data.CloseDB()

	controllers.UploadsDir = cfg.UploadsDir

	// Создаем новый маршрутизатор gorilla/mux
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api").Subrouter()

	// События: список, создание, поток изменений, удаление.
	// /events/stream регистрируется вместе с /events/{id}; шаблон {id:[0-9]+}
	// не перехватывает "stream".
	apiRouter.HandleFunc("/events", controllers.GetEventsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/events", controllers.CreateEventHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/events/stream", controllers.EventsStreamHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/events/{id:[0-9]+}", controllers.DeleteEventHandler).Methods(http.MethodDelete)

	// Месячная сетка с разложенными по ячейкам событиями и экспорт iCalendar
	apiRouter.HandleFunc("/calendar", controllers.GetCalendarHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/calendar.ics", controllers.ExportCalendarHandler).Methods(http.MethodGet)

	// Статистика для панели слева
	apiRouter.HandleFunc("/stats", controllers.GetStatsHandler).Methods(http.MethodGet)

	// Загрузка картинок для свиданий
	apiRouter.HandleFunc("/file/upload", controllers.UploadFileHandler).Methods(http.MethodPost)

	// Маршрут для проверки состояния сервера
	apiRouter.HandleFunc("/health", controllers.HealthCheck).Methods(http.MethodGet)

	// Отдача загруженных картинок по прямой ссылке
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// Одностраничный интерфейс календаря
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	// В полночь рассылаем сигнал подключенным клиентам, чтобы они
	// обновили подсветку "сегодня" без перезагрузки страницы.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		log.Println("Смена дня: рассылаем уведомление подключенным клиентам.")
		controllers.ChangeHub.Broadcast(notify.Change{Op: notify.OpTick})
	}); err != nil {
		log.Fatalf("Не удалось зарегистрировать задачу смены дня: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Запуск сервера на %s", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, router); err != nil {
		log.Fatal(err)
	}
}
