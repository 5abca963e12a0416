package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope every endpoint shares: a snake_case
// machine code plus an optional detail payload (field violations, a numero...).
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ValidationDetails carries a rejected form back to the front-end: raw
// field -> code pairs for programmatic handling, plus the same fields
// translated for display.
type ValidationDetails struct {
	Champs   map[string]string `json:"champs"`
	Messages map[string]string `json:"messages"`
}

// JSON writes payload with the given status. Marshaling happens before the
// header so an encode failure can still produce a clean 500.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			log.Printf("httpx: encode response: %v", err)
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the standard error envelope.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}

// ValidationFailed writes the 400 envelope for a form rejected by the
// wizard's validators.
func ValidationFailed(w http.ResponseWriter, champs, messages map[string]string) {
	JSONError(w, http.StatusBadRequest, "validation_failed", ValidationDetails{
		Champs:   champs,
		Messages: messages,
	})
}
