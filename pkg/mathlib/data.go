package mathlib

import "github.com/rohitg00/manim-video-generator/pkg/models"

// builtinEquations is the fixed equation table. IDs are stable; the enricher
// deduplicates on them.
var builtinEquations = []models.Equation{
	{
		ID:        "pythagorean",
		Name:      "Pythagorean Theorem",
		Latex:     `a^2 + b^2 = c^2`,
		Variables: []string{"a", "b", "c"},
		Tags:      []string{"pythagorean", "geometry", "triangle", "right angle"},
	},
	{
		ID:        "quadratic-formula",
		Name:      "Quadratic Formula",
		Latex:     `x = \frac{-b \pm \sqrt{b^2 - 4ac}}{2a}`,
		Variables: []string{"x", "a", "b", "c"},
		Tags:      []string{"quadratic", "algebra", "roots", "polynomial"},
	},
	{
		ID:        "derivative-limit",
		Name:      "Derivative as a Limit",
		Latex:     `f'(x) = \lim_{h \to 0} \frac{f(x+h) - f(x)}{h}`,
		Variables: []string{"f", "x", "h"},
		Tags:      []string{"derivative", "calculus", "limit", "slope"},
	},
	{
		ID:        "fundamental-calculus",
		Name:      "Fundamental Theorem of Calculus",
		Latex:     `\int_a^b f(x)\,dx = F(b) - F(a)`,
		Variables: []string{"f", "F", "a", "b", "x"},
		Tags:      []string{"integral", "calculus", "antiderivative", "area"},
	},
	{
		ID:        "euler-identity",
		Name:      "Euler's Identity",
		Latex:     `e^{i\pi} + 1 = 0`,
		Variables: []string{"e", "i"},
		Tags:      []string{"euler", "complex", "exponential", "identity"},
	},
	{
		ID:        "euler-formula",
		Name:      "Euler's Formula",
		Latex:     `e^{i\theta} = \cos\theta + i\sin\theta`,
		Variables: []string{"e", "i", "\\theta"},
		Tags:      []string{"euler", "complex", "trigonometry", "rotation"},
	},
	{
		ID:        "sin-cos-identity",
		Name:      "Pythagorean Trigonometric Identity",
		Latex:     `\sin^2\theta + \cos^2\theta = 1`,
		Variables: []string{"\\theta"},
		Tags:      []string{"trigonometry", "identity", "sine", "cosine", "unit circle"},
	},
	{
		ID:        "law-of-cosines",
		Name:      "Law of Cosines",
		Latex:     `c^2 = a^2 + b^2 - 2ab\cos C`,
		Variables: []string{"a", "b", "c", "C"},
		Tags:      []string{"trigonometry", "triangle", "geometry"},
	},
	{
		ID:        "binomial-theorem",
		Name:      "Binomial Theorem",
		Latex:     `(x+y)^n = \sum_{k=0}^{n} \binom{n}{k} x^{n-k} y^k`,
		Variables: []string{"x", "y", "n", "k"},
		Tags:      []string{"binomial", "algebra", "combinatorics", "expansion"},
	},
	{
		ID:        "gaussian-integral",
		Name:      "Gaussian Integral",
		Latex:     `\int_{-\infty}^{\infty} e^{-x^2}\,dx = \sqrt{\pi}`,
		Variables: []string{"x"},
		Tags:      []string{"gaussian", "integral", "probability", "normal distribution"},
	},
	{
		ID:        "taylor-series",
		Name:      "Taylor Series",
		Latex:     `f(x) = \sum_{n=0}^{\infty} \frac{f^{(n)}(a)}{n!}(x-a)^n`,
		Variables: []string{"f", "x", "a", "n"},
		Tags:      []string{"taylor", "series", "calculus", "approximation"},
	},
	{
		ID:        "eigenvalue-equation",
		Name:      "Eigenvalue Equation",
		Latex:     `A\mathbf{v} = \lambda\mathbf{v}`,
		Variables: []string{"A", "\\mathbf{v}", "\\lambda"},
		Tags:      []string{"eigenvalue", "linear algebra", "matrix", "vector"},
	},
	{
		ID:        "bayes-theorem",
		Name:      "Bayes' Theorem",
		Latex:     `P(A \mid B) = \frac{P(B \mid A)\,P(A)}{P(B)}`,
		Variables: []string{"A", "B"},
		Tags:      []string{"bayes", "probability", "conditional", "statistics"},
	},
	{
		ID:        "fourier-transform",
		Name:      "Fourier Transform",
		Latex:     `\hat{f}(\xi) = \int_{-\infty}^{\infty} f(x)\, e^{-2\pi i x \xi}\,dx`,
		Variables: []string{"f", "x", "\\xi"},
		Tags:      []string{"fourier", "transform", "frequency", "signal"},
	},
	{
		ID:        "eulers-polyhedron",
		Name:      "Euler's Polyhedron Formula",
		Latex:     `V - E + F = 2`,
		Variables: []string{"V", "E", "F"},
		Tags:      []string{"euler", "topology", "polyhedron", "graph"},
	},
}

// builtinTheorems is the fixed theorem table.
var builtinTheorems = []models.Theorem{
	{
		ID:        "thm-pythagorean",
		Name:      "Pythagorean Theorem",
		Statement: "In a right triangle, the square of the hypotenuse equals the sum of the squares of the other two sides.",
		Tags:      []string{"pythagorean", "geometry", "triangle"},
	},
	{
		ID:        "thm-fundamental-calculus",
		Name:      "Fundamental Theorem of Calculus",
		Statement: "Differentiation and integration are inverse operations: the integral of f over [a,b] is F(b) - F(a) for any antiderivative F.",
		Tags:      []string{"calculus", "integral", "derivative"},
	},
	{
		ID:        "thm-mean-value",
		Name:      "Mean Value Theorem",
		Statement: "A differentiable function attains its average rate of change as an instantaneous rate somewhere in the interval.",
		Tags:      []string{"calculus", "derivative", "continuity"},
	},
	{
		ID:        "thm-central-limit",
		Name:      "Central Limit Theorem",
		Statement: "Sums of many independent random variables tend toward a normal distribution regardless of the underlying distribution.",
		Tags:      []string{"probability", "statistics", "normal distribution"},
	},
	{
		ID:        "thm-fundamental-algebra",
		Name:      "Fundamental Theorem of Algebra",
		Statement: "Every non-constant polynomial with complex coefficients has at least one complex root.",
		Tags:      []string{"algebra", "polynomial", "complex"},
	},
	{
		ID:        "thm-euclid-primes",
		Name:      "Euclid's Theorem",
		Statement: "There are infinitely many prime numbers.",
		Tags:      []string{"number theory", "prime"},
	},
	{
		ID:        "thm-intermediate-value",
		Name:      "Intermediate Value Theorem",
		Statement: "A continuous function on [a,b] takes every value between f(a) and f(b).",
		Tags:      []string{"calculus", "continuity", "limit"},
	},
	{
		ID:        "thm-triangle-inequality",
		Name:      "Triangle Inequality",
		Statement: "The length of any side of a triangle is less than the sum of the other two sides.",
		Tags:      []string{"geometry", "triangle", "inequality", "vector"},
	},
}

// builtinDefinitions is the fixed definition table. The enricher
// deduplicates on the lowercased term.
var builtinDefinitions = []models.Definition{
	{Term: "Limit", Definition: "The value a function approaches as its input approaches some point."},
	{Term: "Derivative", Definition: "The instantaneous rate of change of a function; the slope of its tangent line."},
	{Term: "Integral", Definition: "The accumulation of a quantity; geometrically, the signed area under a curve."},
	{Term: "Function", Definition: "A rule assigning exactly one output to each input."},
	{Term: "Vector", Definition: "A quantity with both magnitude and direction."},
	{Term: "Matrix", Definition: "A rectangular array of numbers representing a linear transformation."},
	{Term: "Eigenvalue", Definition: "A scalar by which an eigenvector is stretched under a linear transformation."},
	{Term: "Hypotenuse", Definition: "The side of a right triangle opposite the right angle; its longest side."},
	{Term: "Prime Number", Definition: "A natural number greater than 1 with no positive divisors other than 1 and itself."},
	{Term: "Probability", Definition: "A measure between 0 and 1 of how likely an event is to occur."},
	{Term: "Slope", Definition: "The ratio of vertical change to horizontal change between two points on a line."},
	{Term: "Unit Circle", Definition: "The circle of radius 1 centered at the origin, used to define trigonometric functions."},
	{Term: "Series", Definition: "The sum of the terms of a sequence."},
	{Term: "Topology", Definition: "The study of properties preserved under continuous deformation."},
}
