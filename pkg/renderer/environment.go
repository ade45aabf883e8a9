package renderer

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// Environment is the probed host capability set. Selection logic takes this
// by value so tests can construct arbitrary environments.
type Environment struct {
	IsDocker    bool `json:"is_docker"`
	HasGPU      bool `json:"has_gpu"`
	HasDisplay  bool `json:"has_display"`
	HasStandard bool `json:"has_standard"`
	HasGL       bool `json:"has_gl"`
}

var (
	probeOnce sync.Once
	probed    Environment
)

// Probe detects the host environment. The result is cached on first call;
// the binaries and display do not change while the process runs.
func Probe(cfg *config.RendererConfig) Environment {
	probeOnce.Do(func() {
		probed = detect(cfg)
	})
	return probed
}

// detect runs the actual checks. Split from Probe for tests.
func detect(cfg *config.RendererConfig) Environment {
	return Environment{
		IsDocker:    detectDocker(),
		HasGPU:      detectGPU(),
		HasDisplay:  detectDisplay(),
		HasStandard: binaryOnPath(cfg.StandardBinary),
		HasGL:       binaryOnPath(cfg.GLBinary),
	}
}

// detectDocker checks for the container marker file or a container cgroup.
func detectDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	s := string(data)
	return strings.Contains(s, "docker") || strings.Contains(s, "containerd") || strings.Contains(s, "kubepods")
}

// detectGPU probes the vendor CLI; macOS always has Metal.
func detectGPU() bool {
	if runtime.GOOS == "darwin" {
		return true
	}
	return binaryOnPath("nvidia-smi")
}

// detectDisplay checks the display environment variable. macOS always has a
// display; Windows has explorer.
func detectDisplay() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	}
	return os.Getenv("DISPLAY") != ""
}

func binaryOnPath(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
