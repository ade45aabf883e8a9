// Package session hosts interactive renderer sessions: a long-lived GL
// renderer child in presenter mode, controlled over a per-session WebSocket
// server.
package session

import "time"

// Command types a client may send.
const (
	CommandPlay       = "play"
	CommandPause      = "pause"
	CommandSeek       = "seek"
	CommandSpeed      = "speed"
	CommandStop       = "stop"
	CommandReload     = "reload"
	CommandCamera     = "camera"
	CommandScreenshot = "screenshot"
)

// Server frame types.
const (
	FrameAck    = "ack"
	FrameError  = "error"
	FrameStatus = "status"
	FrameData   = "data"
)

// CommandFrame is a client → server message.
type CommandFrame struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// ServerFrame is a server → client message.
type ServerFrame struct {
	Type      string `json:"type"`
	Command   string `json:"command,omitempty"`
	Payload   any    `json:"payload,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func newServerFrame(frameType, command string, payload any, errMsg string) ServerFrame {
	return ServerFrame{
		Type:      frameType,
		Command:   command,
		Payload:   payload,
		Error:     errMsg,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Status is the session state broadcast to every client after each accepted
// command and on connect/disconnect.
type Status struct {
	SessionID     string  `json:"sessionId"`
	Playing       bool    `json:"playing"`
	CurrentTime   float64 `json:"currentTime"`
	TotalDuration float64 `json:"totalDuration"`
	Speed         float64 `json:"speed"`
	Connected     int     `json:"connected"`
}

// isCommand reports whether t is a recognized command type.
func isCommand(t string) bool {
	switch t {
	case CommandPlay, CommandPause, CommandSeek, CommandSpeed,
		CommandStop, CommandReload, CommandCamera, CommandScreenshot:
		return true
	}
	return false
}
