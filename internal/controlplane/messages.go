package controlplane

import (
	"encoding/json"
	"time"
)

// Control-plane message types. The wire format is one JSON envelope per
// WebSocket text frame; payload shape depends on the type.
const (
	MsgTypeAuth         = "auth"
	MsgTypeAuthResponse = "auth_response"
	MsgTypeHeartbeat    = "heartbeat"
	MsgTypeHeartbeatAck = "heartbeat_ack"
	MsgTypePing         = "ping"
	MsgTypePong         = "pong"
	MsgTypeResponse     = "response"

	MsgTypeExecuteCommand = "execute_command"
	MsgTypeCommandResult  = "command_result"

	MsgTypeStartTerminal  = "start_terminal"
	MsgTypeTerminalInput  = "terminal_input"
	MsgTypeTerminalOutput = "terminal_output"
	MsgTypeTerminalResize = "terminal_resize"
	MsgTypeCloseTerminal  = "close_terminal"

	MsgTypeListDrives    = "list_drives"
	MsgTypeListFiles     = "list_files"
	MsgTypeScanDirectory = "scan_directory"
	MsgTypeScanProgress  = "scan_progress"
	MsgTypeDownloadFile  = "download_file"
	MsgTypeUploadFile    = "upload_file"
	MsgTypeFileData      = "file_data"

	MsgTypeWebRTCStart      = "webrtc_start"
	MsgTypeWebRTCSignal     = "webrtc_signal"
	MsgTypeWebRTCStop       = "webrtc_stop"
	MsgTypeWebRTCSetQuality = "webrtc_set_quality"

	MsgTypeUninstallAgent     = "uninstall_agent"
	MsgTypeDisconnect         = "disconnect"
	MsgTypeSetMetricsInterval = "set_metrics_interval"

	MsgTypeUpdateCertificate = "update_certificate"
	MsgTypeCertUpdateAck     = "cert_update_ack"
)

// Envelope is the wire envelope shared by every control-plane message.
type Envelope struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	AgentID   string          `json:"agentId,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Success   bool            `json:"success,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewEnvelope builds an envelope with a marshalled payload. A nil payload
// leaves the field empty.
func NewEnvelope(msgType, requestID string, payload any) (*Envelope, error) {
	env := &Envelope{
		Type:      msgType,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return env, nil
}

// AuthPayload is the first message an agent must send after connecting.
type AuthPayload struct {
	AgentID  string `json:"agentId"`
	Hostname string `json:"hostname,omitempty"`
	Version  string `json:"version,omitempty"`
}

// AuthResponsePayload tells the agent whether it was accepted.
type AuthResponsePayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CommandPayload instructs the agent to run a command or script.
type CommandPayload struct {
	CommandID   string `json:"commandId"`
	CommandType string `json:"commandType"`
	Command     string `json:"command"`
	TimeoutSecs int    `json:"timeoutSecs,omitempty"`
}

// CommandResultPayload is the asynchronous outcome of a command.
type CommandResultPayload struct {
	CommandID string `json:"commandId"`
	Success   bool   `json:"success"`
	Output    string `json:"output"`
	Error     string `json:"error,omitempty"`
	ExitCode  int    `json:"exitCode"`
}

// StartTerminalPayload opens an interactive terminal session.
type StartTerminalPayload struct {
	SessionID string `json:"sessionId"`
	Cols      int    `json:"cols,omitempty"`
	Rows      int    `json:"rows,omitempty"`
}

// TerminalDataPayload carries terminal input or output bytes (base64 via
// encoding/json []byte handling).
type TerminalDataPayload struct {
	SessionID string `json:"sessionId"`
	Data      []byte `json:"data"`
}

// TerminalResizePayload resizes a terminal session.
type TerminalResizePayload struct {
	SessionID string `json:"sessionId"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
}

// ListFilesPayload requests a directory listing.
type ListFilesPayload struct {
	Path string `json:"path"`
}

// ScanDirectoryPayload requests a recursive size scan.
type ScanDirectoryPayload struct {
	Path     string `json:"path"`
	MaxDepth int    `json:"maxDepth"`
}

// TransferFilePayload moves a file between host and agent.
type TransferFilePayload struct {
	RemotePath string `json:"remotePath"`
	LocalPath  string `json:"localPath"`
}

// FileDataPayload carries file content for uploads and for the agent's
// reply to a download request.
type FileDataPayload struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

// WebRTCStartPayload initiates a remote-desktop session with an SDP offer.
// The offer/answer/signal contents are opaque to the server.
type WebRTCStartPayload struct {
	SessionID string          `json:"sessionId"`
	Offer     json.RawMessage `json:"offer"`
}

// WebRTCSignalPayload relays an ICE candidate or renegotiation blob verbatim.
type WebRTCSignalPayload struct {
	SessionID string          `json:"sessionId,omitempty"`
	Signal    json.RawMessage `json:"signal"`
}

// WebRTCQualityPayload adjusts stream quality.
type WebRTCQualityPayload struct {
	Quality string `json:"quality"`
}

// MetricsIntervalPayload changes how often the agent reports metrics.
type MetricsIntervalPayload struct {
	IntervalSecs int `json:"intervalSecs"`
}

// CertificatePayload pushes a CA certificate to the agent.
type CertificatePayload struct {
	CertPEM  string `json:"certPem"`
	CertHash string `json:"certHash"`
}

// DisconnectPayload tells the agent why it is being dropped.
type DisconnectPayload struct {
	Reason string `json:"reason"`
}
