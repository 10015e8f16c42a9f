package controllers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondJSON сериализует payload в JSON и отправляет клиенту с указанным статусом.
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// Заголовки уже отправлены, http.Error здесь использовать нельзя.
			log.Printf("respondJSON: ошибка кодирования ответа: %v", err)
		}
	}
}

// respondError отправляет клиенту JSON с полем "error" и логирует проблему.
// Через этот хелпер проходят ошибки всех трех мутирующих операций,
// чтобы ни одна из них не терялась молча.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP %d: %s", statusCode, message)
	respondJSON(w, statusCode, map[string]string{"error": message})
}
