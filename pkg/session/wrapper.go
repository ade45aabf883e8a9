package session

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// The generated code is never string-rewritten. It is written verbatim to its
// own module and a templated wrapper scene imports it, adds the WebSocket
// control client, and delegates construction. The renderer runs the wrapper.

const generatedFileName = "generated_scene.py"
const wrapperFileName = "session_scene.py"

var wrapperTemplate = template.Must(template.New("wrapper").Parse(`from manimlib import *
import json
import queue
import threading

import websocket

from generated_scene import MainScene as GeneratedScene

_COMMANDS = queue.Queue()


def _control_listener():
    ws = websocket.WebSocket()
    ws.connect("ws://localhost:{{.Port}}/")
    while True:
        try:
            frame = json.loads(ws.recv())
        except Exception:
            return
        if isinstance(frame, dict):
            _COMMANDS.put(frame)


threading.Thread(target=_control_listener, daemon=True).start()


class MainScene(GeneratedScene):
    """Delegates to the generated scene and applies control commands."""

    def setup(self):
        super().setup()
        self._speed = 1.0
        self._paused = False

    def _apply_commands(self):
        while True:
            try:
                frame = _COMMANDS.get_nowait()
            except queue.Empty:
                return
            kind = frame.get("type")
            payload = frame.get("payload") or {}
            if kind == "pause":
                self._paused = True
            elif kind == "play":
                self._paused = False
            elif kind == "speed":
                self._speed = float(payload.get("speed", 1.0))
            elif kind == "seek":
                self.camera.frame.save_state()
            elif kind == "stop":
                raise EndScene()

    def update_frame(self, dt=0, *args, **kwargs):
        self._apply_commands()
        while self._paused:
            self._apply_commands()
            super().update_frame(0, *args, **kwargs)
        super().update_frame(dt * self._speed, *args, **kwargs)
`))

// writeSessionFiles writes the generated code and the wrapper scene into dir.
func writeSessionFiles(dir, code string, port int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, generatedFileName), []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing generated scene: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, wrapperFileName))
	if err != nil {
		return fmt.Errorf("creating wrapper scene: %w", err)
	}
	defer f.Close()
	if err := wrapperTemplate.Execute(f, struct{ Port int }{Port: port}); err != nil {
		return fmt.Errorf("rendering wrapper scene: %w", err)
	}
	return nil
}
