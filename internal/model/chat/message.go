package chat

import "time"

// Message roles as they appear on the wire.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single immutable turn of the conversation transcript.
// Model messages carry the mode that produced them so the UI can badge
// replies even after the visitor switches persona.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Mode      Mode      `json:"mode,omitempty"`
}
