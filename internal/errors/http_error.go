package errors

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes the structured error body every handler failure uses. No
// failure is allowed to escape a handler as a bare panic or an empty 500.
func WriteJSON(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
