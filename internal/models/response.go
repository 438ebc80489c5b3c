package models

// APIResponse is the envelope every gateway endpoint returns.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// ErrorDetail carries a machine-readable code alongside the human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
