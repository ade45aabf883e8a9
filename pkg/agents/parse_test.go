package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"intent": "VISUALIZE_MATH"}`,
			want: `{"intent": "VISUALIZE_MATH"}`,
		},
		{
			name: "object wrapped in prose",
			in:   "Sure! Here is the analysis:\n{\"intent\": \"CREATE_SCENE\"}\nLet me know if you need more.",
			want: `{"intent": "CREATE_SCENE"}`,
		},
		{
			name: "nested braces",
			in:   `{"a": {"b": 1}}`,
			want: `{"a": {"b": 1}}`,
		},
		{
			name: "braces inside strings are ignored",
			in:   `{"latex": "\\frac{a}{b}", "note": "a } inside"}`,
			want: `{"latex": "\\frac{a}{b}", "note": "a } inside"}`,
		},
		{
			name: "no object",
			in:   "no json here",
			want: "",
		},
		{
			name: "unbalanced object",
			in:   `{"a": 1`,
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}

func TestExtractFencedCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fence with language tag",
			in:   "Here you go:\n```python\nfrom manim import *\n```\nEnjoy!",
			want: "from manim import *",
		},
		{
			name: "fence without language tag",
			in:   "```\nprint('hi')\n```",
			want: "print('hi')",
		},
		{
			name: "no fence returns trimmed input",
			in:   "  from manim import *\n",
			want: "from manim import *",
		},
		{
			name: "unclosed fence takes the rest",
			in:   "```python\nclass MainScene(Scene):\n    pass",
			want: "class MainScene(Scene):\n    pass",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractFencedCode(tc.in))
		})
	}
}
