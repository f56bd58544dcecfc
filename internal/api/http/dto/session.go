package dto

import "encoding/json"

type StartTerminalRequest struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind"`
}

type TerminalInputRequest struct {
	Data []byte `json:"data" binding:"required"`
}

type TerminalResizeRequest struct {
	Cols int `json:"cols" binding:"required,min=1"`
	Rows int `json:"rows" binding:"required,min=1"`
}

type WebRTCStartRequest struct {
	Offer json.RawMessage `json:"offer" binding:"required"`
}

type WebRTCStartResponse struct {
	SessionID string          `json:"sessionId"`
	Answer    json.RawMessage `json:"answer"`
}

type WebRTCSignalRequest struct {
	Signal json.RawMessage `json:"signal" binding:"required"`
}

type WebRTCQualityRequest struct {
	Quality string `json:"quality" binding:"required"`
}
