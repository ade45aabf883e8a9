package renderer

import (
	"regexp"
	"strings"
)

// Dialect rewriting between the two engine variants. Transforms are
// string-level and idempotent: once code is in the target dialect, applying
// the transform again changes nothing.

const (
	standardImport = "from manim import *"
	glImport       = "from manimlib import *"
)

var (
	// self.set_camera_orientation(phi=..., theta=...) — standard 3D camera call.
	cameraOrientationRe = regexp.MustCompile(`self\.set_camera_orientation\(([^)]*)\)`)

	// self.begin_ambient_camera_rotation(rate=0.2) or with no args.
	ambientStartRe = regexp.MustCompile(`self\.begin_ambient_camera_rotation\(\s*(?:rate\s*=\s*([0-9.]+)\s*)?\)`)

	// self.stop_ambient_camera_rotation()
	ambientStopRe = regexp.MustCompile(`self\.stop_ambient_camera_rotation\(\s*\)`)
)

// toStandardDialect rewrites GL-dialect code for the standard engine: only
// the import line differs in this direction.
func toStandardDialect(code string) string {
	return strings.ReplaceAll(code, glImport, standardImport)
}

// toGLDialect rewrites standard-dialect code for the GL engine: the import
// line, camera-orientation calls (Euler angles on the camera frame), and the
// ambient-rotation pair (updater add/clear).
func toGLDialect(code string) string {
	out := strings.ReplaceAll(code, standardImport, glImport)

	out = cameraOrientationRe.ReplaceAllString(out, `self.camera.frame.set_euler_angles($1)`)

	out = ambientStartRe.ReplaceAllStringFunc(out, func(m string) string {
		rate := "0.2"
		if sub := ambientStartRe.FindStringSubmatch(m); sub[1] != "" {
			rate = sub[1]
		}
		return "self.camera.frame.add_updater(lambda m, dt: m.increment_theta(" + rate + " * dt))"
	})

	out = ambientStopRe.ReplaceAllString(out, `self.camera.frame.clear_updaters()`)

	return out
}
