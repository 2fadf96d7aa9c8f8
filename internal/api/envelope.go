package api

import (
	"encoding/json"
)

// The backend wraps payloads inconsistently: some endpoints return the
// object bare, some under "data", some under a resource key, and some
// nest wrappers. unwrap normalizes every response once, here, so no
// call site ever inspects the envelope.
var wrapperKeys = []string{"data", "result", "payload", "order", "orders"}

func unwrap(raw json.RawMessage) json.RawMessage {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	for _, key := range wrapperKeys {
		if inner, ok := env[key]; ok {
			return unwrap(inner)
		}
	}
	return raw
}

// errorMessage pulls the backend-supplied error text out of a failure
// body, trying the shapes the backend is known to emit.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
