package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-shop/logging"
	"go-shop/services"
	"go-shop/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto a status code and a generic
// message. Internal detail goes to the log, never to the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		http.Error(w, "Invalid input", http.StatusBadRequest)
	case errors.Is(err, store.ErrDuplicateEmail):
		http.Error(w, "Email already registered", http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrTimeout), errors.Is(err, store.ErrUnavailable), errors.Is(err, store.ErrConflict):
		logging.FromContext(ctx).Error("storage error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		logging.FromContext(ctx).Error("unhandled error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
