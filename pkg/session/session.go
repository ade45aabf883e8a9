package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/coder/websocket"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// killGrace is how long a child gets after SIGTERM before SIGKILL.
const killGrace = 5 * time.Second

// Session is one interactive renderer run: a GL child in presenter mode plus
// the WebSocket control server on its allocated port.
type Session struct {
	ID        string
	Port      int
	StartedAt time.Time

	cfg *config.SessionConfig
	dir string

	mu            sync.Mutex
	playing       bool
	currentTime   float64
	totalDuration float64
	speed         float64
	clients       map[*websocket.Conn]bool

	server   *http.Server
	listener net.Listener
	cmd      *exec.Cmd

	stopOnce  sync.Once
	done      chan struct{}
	exited    chan struct{}
	onStopped func(id string)
}

// Status returns a snapshot of the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	return Status{
		SessionID:     s.ID,
		Playing:       s.playing,
		CurrentTime:   s.currentTime,
		TotalDuration: s.totalDuration,
		Speed:         s.speed,
		Connected:     len(s.clients),
	}
}

// serve runs the WebSocket server until the listener closes.
func (s *Session) serve() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	s.server = &http.Server{Handler: mux}
	if err := s.server.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		slog.Warn("Session server exited", "session_id", s.ID, "error", err)
	}
}

func (s *Session) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // localhost control channel, no origin check
	})
	if err != nil {
		slog.Warn("WebSocket accept failed", "session_id", s.ID, "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	connected := len(s.clients)
	s.mu.Unlock()
	slog.Info("Session client connected", "session_id", s.ID, "clients", connected)
	s.broadcastStatus()

	s.readLoop(r.Context(), conn)

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close(websocket.StatusNormalClosure, "bye")
	s.broadcastStatus()
}

// readLoop processes client frames until disconnect or idle timeout.
func (s *Session) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		readCtx, cancel := context.WithTimeout(ctx, s.cfg.IdleReadTimeout)
		msgType, data, err := conn.Read(readCtx)
		cancel()
		if err != nil {
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var frame CommandFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.send(conn, newServerFrame(FrameError, "", nil, "malformed frame"))
			continue
		}
		s.handleCommand(conn, frame)
	}
}

// handleCommand applies one command, acks it, relays it to the other clients
// (the renderer's control listener among them), and broadcasts the new
// status.
func (s *Session) handleCommand(conn *websocket.Conn, frame CommandFrame) {
	if !isCommand(frame.Type) {
		s.send(conn, newServerFrame(FrameError, frame.Type, nil, "unknown command"))
		return
	}

	s.mu.Lock()
	switch frame.Type {
	case CommandPlay:
		s.playing = true
	case CommandPause:
		s.playing = false
	case CommandSeek:
		if t, ok := frame.Payload["time"].(float64); ok && t >= 0 {
			s.currentTime = t
		}
	case CommandSpeed:
		if v, ok := frame.Payload["speed"].(float64); ok && v > 0 {
			s.speed = v
		}
	}
	s.mu.Unlock()

	s.send(conn, newServerFrame(FrameAck, frame.Type, nil, ""))
	s.relay(conn, frame)
	s.broadcastStatus()

	if frame.Type == CommandStop {
		go s.stop()
	}
}

// relay forwards an accepted command to every other client as a data frame.
func (s *Session) relay(from *websocket.Conn, frame CommandFrame) {
	out := newServerFrame(FrameData, frame.Type, frame.Payload, "")
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		if conn != from {
			conns = append(conns, conn)
		}
	}
	s.mu.Unlock()
	for _, conn := range conns {
		s.send(conn, out)
	}
}

// broadcastStatus pushes the current status to every client.
func (s *Session) broadcastStatus() {
	s.mu.Lock()
	status := s.statusLocked()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	frame := newServerFrame(FrameStatus, "", status, "")
	for _, conn := range conns {
		s.send(conn, frame)
	}
}

func (s *Session) send(conn *websocket.Conn, frame ServerFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("Session write failed", "session_id", s.ID, "error", err)
	}
}

// watchChild owns the single Wait on the renderer child and tears the
// session down when it exits on its own.
func (s *Session) watchChild() {
	err := s.cmd.Wait()
	close(s.exited)
	select {
	case <-s.done:
		return // stop() initiated the exit
	default:
	}
	slog.Info("Session renderer exited", "session_id", s.ID, "error", err)
	s.stop()
}

// stop tears the session down: clients closed with a normal-close code, the
// server shut, the child terminated (SIGTERM, then SIGKILL after the grace
// period), temp files removed, and the session deregistered.
func (s *Session) stop() {
	s.stopOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		conns := make([]*websocket.Conn, 0, len(s.clients))
		for conn := range s.clients {
			conns = append(conns, conn)
		}
		s.clients = make(map[*websocket.Conn]bool)
		s.mu.Unlock()
		for _, conn := range conns {
			conn.Close(websocket.StatusNormalClosure, "session stopped")
		}

		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), killGrace)
			if err := s.server.Shutdown(ctx); err != nil {
				s.server.Close()
			}
			cancel()
		}

		s.terminateChild()

		if err := os.RemoveAll(s.dir); err != nil {
			slog.Warn("Removing session temp dir failed", "session_id", s.ID, "error", err)
		}

		if s.onStopped != nil {
			s.onStopped(s.ID)
		}
		slog.Info("Session stopped", "session_id", s.ID, "event", "session:stopped")
	})
}

// terminateChild sends SIGTERM and escalates to SIGKILL after the grace
// period. The actual reaping happens in watchChild.
func (s *Session) terminateChild() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	select {
	case <-s.exited:
		return
	default:
	}
	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return // already gone
	}
	select {
	case <-s.exited:
	case <-time.After(killGrace):
		slog.Warn("Session renderer ignored SIGTERM, killing", "session_id", s.ID)
		s.cmd.Process.Kill()
		<-s.exited
	}
}
