package dto

// LoadChannelRequest represents request for loading a channel from free-form input
type LoadChannelRequest struct {
	Input string `json:"input"`
}

// ToggleSelectionRequest represents request for selecting or deselecting a single video
type ToggleSelectionRequest struct {
	VideoID  string `json:"videoId" binding:"required"`
	Selected bool   `json:"selected"`
}

// SelectAllRequest represents request for the "select all" control
type SelectAllRequest struct {
	Selected bool `json:"selected"`
}

// Res is the notification-shaped error response
type Res struct {
	Error     bool   `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
