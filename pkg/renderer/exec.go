package renderer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// stderrLimit bounds the stderr snippet attached to failure results.
const stderrLimit = 2048

// runRender is the shared render sequence for both variants: transform the
// code, write the scene file, spawn the engine, stream its output, and
// discover the result file.
func runRender(ctx context.Context, r Renderer, opts RenderOptions) RenderResult {
	start := time.Now()
	log := slog.With("job_id", opts.JobID, "renderer", r.Kind())

	// The child runs with its working directory set to TempDir, so a relative
	// media dir would make the engine write under TempDir while output
	// discovery searches relative to the process working directory. Pin both
	// paths before anything uses them.
	if abs, err := filepath.Abs(opts.MediaDir); err == nil {
		opts.MediaDir = abs
	}
	if abs, err := filepath.Abs(opts.TempDir); err == nil {
		opts.TempDir = abs
	}

	code := r.TransformCode(opts.Code)

	if err := os.MkdirAll(opts.TempDir, 0o755); err != nil {
		return failResult(start, fmt.Sprintf("creating temp dir: %v", err), "")
	}
	scenePath := filepath.Join(opts.TempDir, sceneFileName)
	if err := os.WriteFile(scenePath, []byte(code), 0o644); err != nil {
		return failResult(start, fmt.Sprintf("writing scene file: %v", err), "")
	}
	if err := os.MkdirAll(opts.MediaDir, 0o755); err != nil {
		return failResult(start, fmt.Sprintf("creating media dir: %v", err), "")
	}

	renderCtx, cancel := context.WithTimeout(ctx, opts.Quality.RenderTimeout())
	defer cancel()

	command, args := r.Command(opts)
	log.Info("Starting render", "command", command, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(renderCtx, command, args...)
	cmd.Dir = opts.TempDir

	stderrBuf := newBoundedBuffer(stderrLimit)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return failResult(start, fmt.Sprintf("stdout pipe: %v", err), "")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return failResult(start, fmt.Sprintf("stderr pipe: %v", err), "")
	}

	if err := cmd.Start(); err != nil {
		return failResult(start, fmt.Sprintf("spawning renderer: %v", err), "")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			log.Debug("renderer stdout", "line", scanner.Text())
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			stderrBuf.WriteLine(line)
			log.Debug("renderer stderr", "line", line)
		}
	}()

	wg.Wait()
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if waitErr != nil {
		msg := fmt.Sprintf("renderer exited: %v", waitErr)
		if errors.Is(renderCtx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("render timed out after %v", opts.Quality.RenderTimeout())
		}
		log.Warn("Render failed", "error", msg, "elapsed", elapsed)
		return RenderResult{Success: false, Error: msg, Stderr: stderrBuf.String(), RenderTime: elapsed}
	}

	videoPath, err := r.FindVideoFile(opts.MediaDir, opts.Quality)
	if err != nil {
		msg := fmt.Sprintf("render succeeded but no output file: %v", err)
		log.Warn("Render output missing", "error", err, "elapsed", elapsed)
		return RenderResult{Success: false, Error: msg, Stderr: stderrBuf.String(), RenderTime: elapsed}
	}

	log.Info("Render complete", "video", videoPath, "elapsed", elapsed)
	return RenderResult{Success: true, VideoPath: videoPath, RenderTime: elapsed}
}

func failResult(start time.Time, msg, stderr string) RenderResult {
	return RenderResult{Success: false, Error: msg, Stderr: stderr, RenderTime: time.Since(start)}
}

// findVideoFile is the shared output discovery: conventional quality-folder
// path first, then a recursive search for MainScene.mp4 / MainScene.mov.
func findVideoFile(mediaDir string, q models.Quality) (string, error) {
	conventional := filepath.Join(mediaDir, "videos", "scene", q.MediaFolder(), SceneClassName+".mp4")
	if _, err := os.Stat(conventional); err == nil {
		return conventional, nil
	}

	var found string
	err := filepath.WalkDir(mediaDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == SceneClassName+".mp4" || name == SceneClassName+".mov" {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", mediaDir, err)
	}
	if found == "" {
		return "", fmt.Errorf("no %s video under %s", SceneClassName, mediaDir)
	}
	return found, nil
}

// binaryVersion runs `<binary> --version` and returns the first output line.
func binaryVersion(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", binary, err)
	}
	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return version, nil
}

// boundedBuffer keeps the most recent lines up to a byte limit.
type boundedBuffer struct {
	mu    sync.Mutex
	limit int
	lines []string
	size  int
}

func newBoundedBuffer(limit int) *boundedBuffer {
	return &boundedBuffer{limit: limit}
}

// WriteLine appends a line, evicting the oldest lines once over the limit.
func (b *boundedBuffer) WriteLine(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	b.size += len(line) + 1
	for b.size > b.limit && len(b.lines) > 1 {
		b.size -= len(b.lines[0]) + 1
		b.lines = b.lines[1:]
	}
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.Join(b.lines, "\n")
	if len(s) > b.limit {
		s = s[len(s)-b.limit:]
	}
	return s
}
