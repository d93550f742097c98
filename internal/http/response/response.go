package response

import (
	"encoding/json"
	"net/http"

	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

// Status is the payload of the liveness routes.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Result is the payload of a submission. Exactly one of Message or Error is set.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Status{Status: "ok", Message: message})
}

func Success(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Result{Success: true, Message: message})
}

// Failure writes {success:false, error:message}. message must be safe to
// show to end users.
func Failure(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Result{Success: false, Error: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	Failure(w, http.StatusBadRequest, message)
}

func InternalError(w http.ResponseWriter, message string) {
	Failure(w, http.StatusInternalServerError, message)
}
