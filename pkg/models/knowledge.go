package models

import "strings"

// Knowledge tree bounds. Expansion fields coming back from a provider are
// clamped to these before a node enters the tree.
const (
	MaxTreeDepth       = 3
	MaxConceptLen      = 50
	MaxDescriptionLen  = 200
	MinExplanationTime = 5
	MaxExplanationTime = 120
)

// KnowledgeNode is one concept in the prerequisite tree. A node owns its
// prerequisite children; `child.Depth = parent.Depth + 1` always holds.
//
// Nodes are treated as immutable: every mutation returns a new node sharing
// unchanged subtrees, so in-flight payloads can hand the tree between agents
// without locking.
type KnowledgeNode struct {
	ID               string           `json:"id"`
	Concept          string           `json:"concept"`
	Description      string           `json:"description"`
	FundamentalScore float64          `json:"fundamental_score"` // [0,1]
	ExplanationTime  int              `json:"explanation_time"`  // seconds, 5-120
	Depth            int              `json:"depth"`             // 0 = root
	Prerequisites    []*KnowledgeNode `json:"prerequisites,omitempty"`
	Explored         bool             `json:"explored"`
}

// Clamp returns a copy of n with its expansion fields forced into bounds.
func (n *KnowledgeNode) Clamp() *KnowledgeNode {
	c := *n
	if len(c.Concept) > MaxConceptLen {
		c.Concept = c.Concept[:MaxConceptLen]
	}
	if len(c.Description) > MaxDescriptionLen {
		c.Description = c.Description[:MaxDescriptionLen]
	}
	if c.FundamentalScore < 0 {
		c.FundamentalScore = 0
	}
	if c.FundamentalScore > 1 {
		c.FundamentalScore = 1
	}
	if c.ExplanationTime < MinExplanationTime {
		c.ExplanationTime = MinExplanationTime
	}
	if c.ExplanationTime > MaxExplanationTime {
		c.ExplanationTime = MaxExplanationTime
	}
	return &c
}

// WithPrerequisite returns a copy of n with child appended. The child's depth
// is rewritten to n.Depth+1; the original node and its existing children are
// shared, not copied.
func (n *KnowledgeNode) WithPrerequisite(child *KnowledgeNode) *KnowledgeNode {
	c := *n
	kid := *child
	kid.Depth = n.Depth + 1
	c.Prerequisites = append(append([]*KnowledgeNode{}, n.Prerequisites...), &kid)
	return &c
}

// WithExplored returns a copy of n with the explored flag set.
func (n *KnowledgeNode) WithExplored() *KnowledgeNode {
	c := *n
	c.Explored = true
	return &c
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *KnowledgeNode) Count() int {
	total := 1
	for _, p := range n.Prerequisites {
		total += p.Count()
	}
	return total
}

// MaxDepth returns the deepest depth value in the subtree rooted at n.
func (n *KnowledgeNode) MaxDepth() int {
	max := n.Depth
	for _, p := range n.Prerequisites {
		if d := p.MaxDepth(); d > max {
			max = d
		}
	}
	return max
}

// Pruned returns a copy of the subtree with all nodes deeper than maxDepth
// removed. Subtrees that need no pruning are shared.
func (n *KnowledgeNode) Pruned(maxDepth int) *KnowledgeNode {
	if n.MaxDepth() <= maxDepth {
		return n
	}
	c := *n
	c.Prerequisites = nil
	for _, p := range n.Prerequisites {
		if p.Depth > maxDepth {
			continue
		}
		c.Prerequisites = append(c.Prerequisites, p.Pruned(maxDepth))
	}
	return &c
}

// Walk visits every node in the subtree, parent before children.
func (n *KnowledgeNode) Walk(fn func(*KnowledgeNode)) {
	fn(n)
	for _, p := range n.Prerequisites {
		p.Walk(fn)
	}
}

// KnowledgeTree is the prerequisite tree for one job, immutable once emitted.
type KnowledgeTree struct {
	Root         *KnowledgeNode    `json:"root"`
	TotalNodes   int               `json:"total_nodes"`
	MaxDepth     int               `json:"max_depth"`
	LearningPath []string          `json:"learning_path"` // post-order node IDs
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewKnowledgeTree builds a tree from a root node, pruning to MaxTreeDepth and
// deriving counts and the post-order learning path.
func NewKnowledgeTree(root *KnowledgeNode, metadata map[string]string) *KnowledgeTree {
	pruned := root.Pruned(MaxTreeDepth)
	return &KnowledgeTree{
		Root:         pruned,
		TotalNodes:   pruned.Count(),
		MaxDepth:     pruned.MaxDepth(),
		LearningPath: postOrder(pruned),
		Metadata:     metadata,
	}
}

// NodeByID finds a node by its ID, or nil.
func (t *KnowledgeTree) NodeByID(id string) *KnowledgeNode {
	var found *KnowledgeNode
	t.Root.Walk(func(n *KnowledgeNode) {
		if n.ID == id {
			found = n
		}
	})
	return found
}

// Concepts returns every concept name in the tree, root first.
func (t *KnowledgeTree) Concepts() []string {
	var out []string
	t.Root.Walk(func(n *KnowledgeNode) {
		out = append(out, n.Concept)
	})
	return out
}

// HasConcept reports whether the tree already contains the concept,
// case-insensitively. Used as the visited set during construction.
func (t *KnowledgeTree) HasConcept(concept string) bool {
	needle := strings.ToLower(concept)
	found := false
	t.Root.Walk(func(n *KnowledgeNode) {
		if strings.ToLower(n.Concept) == needle {
			found = true
		}
	})
	return found
}

// postOrder returns node IDs children-before-parent. This ordering is the
// chronological spine of the narrative: fundamentals first, main concept last.
func postOrder(n *KnowledgeNode) []string {
	var out []string
	for _, p := range n.Prerequisites {
		out = append(out, postOrder(p)...)
	}
	return append(out, n.ID)
}
