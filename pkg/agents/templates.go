package agents

import "strings"

// The template catalogue is the last-resort code source when every provider
// fails. Entries match by substring on the lowercased concept; these are the
// showpiece scenes worth shipping canned code for, not a general fallback.

type sceneTemplate struct {
	name     string
	keywords []string
	code     string
}

// templateFor returns the first catalogue entry whose keywords match the
// concept.
func templateFor(concept string) (sceneTemplate, bool) {
	lower := strings.ToLower(concept)
	for _, tmpl := range sceneTemplates {
		for _, key := range tmpl.keywords {
			if strings.Contains(lower, key) {
				return tmpl, true
			}
		}
	}
	return sceneTemplate{}, false
}

var sceneTemplates = []sceneTemplate{
	{
		name:     "mobius_strip",
		keywords: []string{"mobius", "möbius"},
		code: `from manim import *
import numpy as np


class MainScene(ThreeDScene):
    def construct(self):
        self.set_camera_orientation(phi=65 * DEGREES, theta=-45 * DEGREES)
        title = Text("The Mobius Strip").to_corner(UL)
        self.add_fixed_in_frame_mobjects(title)

        strip = Surface(
            lambda u, v: np.array([
                (1 + 0.5 * v * np.cos(u / 2)) * np.cos(u),
                (1 + 0.5 * v * np.cos(u / 2)) * np.sin(u),
                0.5 * v * np.sin(u / 2),
            ]),
            u_range=[0, TAU],
            v_range=[-1, 1],
            resolution=(48, 8),
            fill_opacity=0.8,
            checkerboard_colors=[BLUE_D, BLUE_E],
        )
        self.play(Create(strip), run_time=3)
        self.begin_ambient_camera_rotation(rate=0.2)
        self.wait(6)
        self.stop_ambient_camera_rotation()
        self.wait(1)
`,
	},
	{
		name:     "klein_bottle",
		keywords: []string{"klein"},
		code: `from manim import *
import numpy as np


class MainScene(ThreeDScene):
    def construct(self):
        self.set_camera_orientation(phi=70 * DEGREES, theta=-30 * DEGREES)
        title = Text("The Klein Bottle").to_corner(UL)
        self.add_fixed_in_frame_mobjects(title)

        def klein(u, v):
            u, v = u * TAU, v * TAU
            r = 4 * (1 - np.cos(u) / 2)
            if u < PI:
                x = 6 * np.cos(u) * (1 + np.sin(u)) + r * np.cos(u) * np.cos(v)
                y = 16 * np.sin(u) + r * np.sin(u) * np.cos(v)
            else:
                x = 6 * np.cos(u) * (1 + np.sin(u)) + r * np.cos(v + PI)
                y = 16 * np.sin(u)
            z = r * np.sin(v)
            return np.array([x, y, z]) / 6

        bottle = Surface(
            lambda u, v: klein(u, v),
            u_range=[0, 1],
            v_range=[0, 1],
            resolution=(48, 16),
            fill_opacity=0.7,
            checkerboard_colors=[TEAL_D, TEAL_E],
        )
        self.play(Create(bottle), run_time=4)
        self.begin_ambient_camera_rotation(rate=0.15)
        self.wait(6)
        self.stop_ambient_camera_rotation()
        self.wait(1)
`,
	},
	{
		name:     "torus_knot",
		keywords: []string{"torus knot", "trefoil"},
		code: `from manim import *
import numpy as np


class MainScene(ThreeDScene):
    def construct(self):
        self.set_camera_orientation(phi=70 * DEGREES, theta=-45 * DEGREES)
        title = Text("A Torus Knot").to_corner(UL)
        self.add_fixed_in_frame_mobjects(title)

        knot = ParametricFunction(
            lambda t: np.array([
                np.cos(2 * t) * (3 + np.cos(3 * t)),
                np.sin(2 * t) * (3 + np.cos(3 * t)),
                np.sin(3 * t),
            ]) / 2,
            t_range=[0, TAU],
            color=YELLOW,
        )
        self.play(Create(knot), run_time=4)
        self.begin_ambient_camera_rotation(rate=0.25)
        self.wait(5)
        self.stop_ambient_camera_rotation()
        self.wait(1)
`,
	},
	{
		name:     "sine_wave",
		keywords: []string{"sine wave", "sine curve"},
		code: `from manim import *
import numpy as np


class MainScene(Scene):
    def construct(self):
        title = Text("The Sine Wave").to_edge(UP)
        axes = Axes(x_range=[0, 4 * PI, PI], y_range=[-1.5, 1.5, 1])
        curve = axes.plot(lambda x: np.sin(x), color=BLUE)
        label = MathTex(r"y = \sin(x)").next_to(title, DOWN)

        self.play(Write(title))
        self.play(Create(axes))
        self.play(Create(curve), Write(label), run_time=3)
        dot = Dot(color=YELLOW).move_to(axes.c2p(0, 0))
        self.play(MoveAlongPath(dot, curve), run_time=4)
        self.wait(1)
`,
	},
	{
		name:     "unit_circle",
		keywords: []string{"unit circle"},
		code: `from manim import *
import numpy as np


class MainScene(Scene):
    def construct(self):
        title = Text("The Unit Circle").to_edge(UP)
        axes = Axes(x_range=[-1.5, 1.5, 1], y_range=[-1.5, 1.5, 1]).scale(2)
        circle = Circle(radius=2, color=BLUE)

        self.play(Write(title))
        self.play(Create(axes), Create(circle))

        theta = ValueTracker(0)
        dot = always_redraw(lambda: Dot(
            2 * np.array([np.cos(theta.get_value()), np.sin(theta.get_value()), 0]),
            color=YELLOW,
        ))
        radius = always_redraw(lambda: Line(ORIGIN, dot.get_center(), color=WHITE))
        self.add(radius, dot)
        self.play(theta.animate.set_value(TAU), run_time=6, rate_func=linear)
        self.wait(1)
`,
	},
}
