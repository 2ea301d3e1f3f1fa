package transport

// Envelope is the single response shape every endpoint answers with, so
// clients branch on one success flag.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
