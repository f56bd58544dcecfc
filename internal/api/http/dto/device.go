package dto

import (
	"time"

	"github.com/google/uuid"
)

type DeviceStatusResponse struct {
	DeviceID uuid.UUID `json:"deviceId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

type ExecuteCommandRequest struct {
	CommandType string `json:"commandType"`
	Command     string `json:"command" binding:"required"`
	TimeoutSecs int    `json:"timeoutSecs"`
}

type ExecuteCommandResponse struct {
	CommandID uuid.UUID `json:"commandId"`
	Status    string    `json:"status"`
}

type PingResponse struct {
	LatencyMs int64 `json:"latencyMs"`
}

type MetricsIntervalRequest struct {
	IntervalSecs int `json:"intervalSecs" binding:"required,min=1"`
}
