package helper

import (
	"encoding/json"
	"net/http"
)

// Every response carries a success boolean; errors additionally carry a
// free-text message. This mirrors what the status-check frontend expects.
type ResponseData struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ResponseError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, code int, data interface{}) {
	WriteJSON(w, code, ResponseData{
		Success: true,
		Data:    data,
	})
}

func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalServerError("")
	}

	WriteJSON(w, appErr.Code, ResponseError{
		Success: false,
		Message: appErr.Message,
	})
}
