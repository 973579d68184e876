package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}

// WriteError writes a {message} error body with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"message": message})
}

// WriteServerError logs the real error and returns a generic 500 body
// so internal details never reach the client.
func WriteServerError(w http.ResponseWriter, err error) {
	log.Printf("ERROR: %v", err)
	WriteError(w, http.StatusInternalServerError, "Something went wrong!")
}
