package chat

// State is a point-in-time snapshot of a conversation handed to views.
type State struct {
	History []Message `json:"history"`
	Draft   string    `json:"draft"`
	Pending bool      `json:"pending"`
	Version uint64    `json:"version"`
}
