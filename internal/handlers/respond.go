package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// internalError — общий финальный обработчик: детали в лог, клиенту общий текст.
func internalError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, msg string, err error) {
	logger.Errorw(msg, "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
