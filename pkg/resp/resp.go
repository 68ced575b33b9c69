package resp

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSONResponse - сериализует data в JSON и пишет в ответ с указанным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("failed to write json response:", err)
	}
}
