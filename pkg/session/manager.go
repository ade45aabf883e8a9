package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// Manager owns the session table and the lifecycle of every interactive
// session.
type Manager struct {
	cfg      *config.SessionConfig
	glBinary string
	tempDir  string

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. glBinary is the GL renderer executable;
// tempDir is the parent for per-session scratch directories.
func NewManager(cfg *config.SessionConfig, glBinary, tempDir string) *Manager {
	return &Manager{
		cfg:      cfg,
		glBinary: glBinary,
		tempDir:  tempDir,
		sessions: make(map[string]*Session),
	}
}

// Start launches a new interactive session for the given scene code: allocate
// a port, write the scene and its wrapper, start the control server, spawn
// the renderer in presenter mode.
func (m *Manager) Start(ctx context.Context, code string) (*Session, error) {
	listener, port, err := m.allocatePort()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	dir := filepath.Join(m.tempDir, "session-"+id)
	if err := writeSessionFiles(dir, code, port); err != nil {
		listener.Close()
		return nil, err
	}

	s := &Session{
		ID:        id,
		Port:      port,
		StartedAt: time.Now(),
		cfg:       m.cfg,
		dir:       dir,
		speed:     1.0,
		playing:   true,
		clients:   make(map[*websocket.Conn]bool),
		listener:  listener,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
		onStopped: m.deregister,
	}

	// Presenter mode: the GL renderer opens its own window and keeps running
	// until the scene ends or the session is stopped. The child deliberately
	// outlives the request context; teardown owns its termination.
	s.cmd = exec.Command(m.glBinary, wrapperFileName, "MainScene", "-p")
	s.cmd.Dir = dir
	if err := s.cmd.Start(); err != nil {
		listener.Close()
		return nil, fmt.Errorf("spawning interactive renderer: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	go s.serve()
	go s.watchChild()

	slog.Info("Interactive session started",
		"session_id", id, "ws_port", port, "pid", s.cmd.Process.Pid)
	return s, nil
}

// allocatePort probes the configured window of consecutive ports and returns
// the first free listener.
func (m *Manager) allocatePort() (net.Listener, int, error) {
	for port := m.cfg.BasePort; port < m.cfg.BasePort+m.cfg.PortWindow; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			return listener, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free port in %d-%d",
		m.cfg.BasePort, m.cfg.BasePort+m.cfg.PortWindow-1)
}

// Get returns a session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// List returns a status snapshot of every live session.
func (m *Manager) List() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Status, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Status())
	}
	return out
}

// Stop tears down one session.
func (m *Manager) Stop(id string) error {
	s, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("no session %s", id)
	}
	s.stop()
	return nil
}

// StopAll tears down every session. Called on process shutdown.
func (m *Manager) StopAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.stop()
		}(s)
	}
	wg.Wait()
}

func (m *Manager) deregister(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
