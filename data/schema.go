package data

// GetSchema возвращает DDL для таблицы событий календаря.
// Date хранится строкой "yyyy-MM-dd"; по ней строится индекс, так как
// выборка на ячейку календаря идет по точному совпадению даты.
func GetSchema() string {
	return `
	CREATE TABLE IF NOT EXISTS Events (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Date TEXT NOT NULL,
		Time TEXT NOT NULL,
		Duration INTEGER NOT NULL DEFAULT 0,
		Description TEXT NOT NULL,
		ImageUrl TEXT,
		CreatedAt DATETIME NOT NULL,
		UpdatedAt DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_date ON Events (Date);
	`
}
