package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	value any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	body, err := json.Marshal(j.value)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

// JSON creates a 200 response that encodes v as the whole body.
// Marshalling happens before any header is written, so an encoding
// failure still reaches the error handler with a clean writer.
func JSON(v any) Response {
	return jsonResponse{value: v}
}
