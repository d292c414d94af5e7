package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// messageResponse is the standard failure/confirmation body: {"message": ...}.
func messageResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}

// errorResponse carries the underlying error text alongside the message,
// matching {"message": ..., "error": ...}.
func errorResponse(msg string, err error) map[string]string {
	return map[string]string{"message": msg, "error": err.Error()}
}

// fieldErrors is the validation failure body: {"errors": {field: message}}.
func fieldErrors(errs map[string]string) map[string]map[string]string {
	return map[string]map[string]string{"errors": errs}
}
