package graph

// VertexType classifies a reason graph vertex.
type VertexType string

const (
	VertexPremise    VertexType = "premise"
	VertexRule       VertexType = "rule"
	VertexConclusion VertexType = "conclusion"
)

// Relation classifies a reason graph edge.
type Relation string

const (
	// RelationInput connects a premise to a rule that reads it.
	RelationInput Relation = "input"

	// RelationEntails connects a rule to a conclusion it logically forces.
	RelationEntails Relation = "entails"

	// RelationDetermines connects a rule to a conclusion value it
	// mechanically fixes (e.g. a hard floor setting the outcome).
	RelationDetermines Relation = "determines"

	// RelationInfluences connects a rule that is one of several
	// contributing factors to a conclusion.
	RelationInfluences Relation = "influences"

	// RelationProduces connects a conclusion that mathematically derives
	// another conclusion (e.g. composite score -> tier).
	RelationProduces Relation = "produces"
)

// Vertex is a single node of the reason graph.
type Vertex struct {
	ID    string     `json:"id"`
	Type  VertexType `json:"type"`
	Label string     `json:"label"`
}

// Edge is a typed directed edge between two vertices.
type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Relation Relation `json:"relation"`
}

// Graph is a finished reason graph. It must not be mutated after the
// Builder releases it; its serialized form is hashed and signed.
type Graph struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// HasEdges reports whether the graph carries at least one edge.
func (g *Graph) HasEdges() bool {
	return g != nil && len(g.Edges) > 0
}

// Builder accumulates vertices and edges in insertion order, deduplicating
// vertices by id. Insertion order is deterministic for a fixed input, so
// two identical evaluations always serialize to identical bytes.
type Builder struct {
	vertices []Vertex
	edges    []Edge
	seen     map[string]bool
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]bool)}
}

// Premise adds a premise vertex if not already present.
func (b *Builder) Premise(id, label string) *Builder {
	return b.vertex(id, VertexPremise, label)
}

// Rule adds a rule vertex if not already present.
func (b *Builder) Rule(id, label string) *Builder {
	return b.vertex(id, VertexRule, label)
}

// Conclusion adds a conclusion vertex if not already present.
func (b *Builder) Conclusion(id, label string) *Builder {
	return b.vertex(id, VertexConclusion, label)
}

func (b *Builder) vertex(id string, t VertexType, label string) *Builder {
	if b.seen[id] {
		return b
	}
	b.seen[id] = true
	b.vertices = append(b.vertices, Vertex{ID: id, Type: t, Label: label})
	return b
}

// Connect adds a typed edge. Both endpoints must already exist; unknown
// endpoints are ignored so a builder can wire conditionally-added
// vertices without guarding every call.
func (b *Builder) Connect(from, to string, relation Relation) *Builder {
	if !b.seen[from] || !b.seen[to] {
		return b
	}
	b.edges = append(b.edges, Edge{From: from, To: to, Relation: relation})
	return b
}

// Graph returns the finished graph. The builder must not be used after
// this call.
func (b *Builder) Graph() *Graph {
	vertices := b.vertices
	if vertices == nil {
		vertices = []Vertex{}
	}
	edges := b.edges
	if edges == nil {
		edges = []Edge{}
	}
	return &Graph{Vertices: vertices, Edges: edges}
}
