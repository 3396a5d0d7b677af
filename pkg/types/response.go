package types

// SuccessEnvelope wraps every 2xx payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Notification is set when the failure is
// something the shopper can correct, so the page can toast it directly.
type APIError struct {
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	Details      any           `json:"details,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
