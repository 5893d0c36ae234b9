// File: graph.go
// Role: Adjacency-map digraph of operations; edges carry signed delay weights.
//
// Semantics (§3, §4.1 of the specification): a directed edge u→v with weight
// w asserts start(v) >= start(u) + w. A due date start(dst)-start(src) <= d is
// therefore encoded as the edge dst->src with weight -d.
//
// Grounded on katalvlaran-lvlath's core package (Graph/Vertex/Edge, adjacency
// map of weights, sentinel errors) but reworked for this domain:
//   - vertices are identified by Operation, not by a bare string;
//   - VertexId is a dense, append-only index (no vertex removal, ever);
//   - every edge is directed and carries *two* adjacency maps per vertex
//     (outgoing and incoming) so relaxation and its ALAP mirror are both O(deg);
//   - no locking: §5 mandates a single-threaded, cooperative execution model,
//     so the sync.RWMutex machinery the teacher uses is deliberately dropped.
package cg

// Graph is a sparse adjacency-map digraph over Operations.
//
// Rationale for adjacency-map-of-weights (vs. a dense matrix): the graph is
// sparse and incremental solvers repeatedly add/remove edges; O(deg)
// relaxation and O(1) edge add/remove/overwrite matter far more than cache
// locality here.
type Graph struct {
	vertices []vertexRecord

	// opIndex maps an Operation's identity to its VertexId.
	opIndex map[OperationKey]VertexId

	// jobIndex maps a JobId to the VertexIds of all operations of that job,
	// in the order they were added (machine sources excluded).
	jobIndex map[JobId][]VertexId

	// machineSources maps a MachineId to its source vertex, when added.
	machineSources map[MachineId]VertexId

	// terminal holds the terminal vertex id, or NoVertex if none was added.
	terminal VertexId
}

// vertexRecord is the internal per-vertex storage: the Operation it
// represents plus its outgoing/incoming adjacency (VertexId -> weight).
type vertexRecord struct {
	op       Operation
	out      map[VertexId]Delay
	in       map[VertexId]Delay
	isSource bool // true for machine-source and graph-source pseudo vertices
}

// New creates an empty Graph.
// Complexity: O(1).
func New() *Graph {
	return &Graph{
		opIndex:        make(map[OperationKey]VertexId),
		jobIndex:       make(map[JobId][]VertexId),
		machineSources: make(map[MachineId]VertexId),
		terminal:       NoVertex,
	}
}

// AddVertex appends a new vertex for op and registers it in the op/job
// indexes. Returns ErrVertexAlreadyExists if op's (Job,Op) identity is
// already present.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(op Operation) (VertexId, error) {
	key := op.Key()
	if _, ok := g.opIndex[key]; ok {
		return NoVertex, ErrVertexAlreadyExists
	}
	id := VertexId(len(g.vertices))
	g.vertices = append(g.vertices, vertexRecord{
		op:  op,
		out: make(map[VertexId]Delay),
		in:  make(map[VertexId]Delay),
	})
	g.opIndex[key] = id
	if op.Job != SourceJobID && op.Job != TerminalJobID {
		g.jobIndex[op.Job] = append(g.jobIndex[op.Job], id)
	}
	return id, nil
}

// AddMachineSource adds the reserved pseudo-operation (SourceJobID, m) as a
// machine source vertex and records it for fast lookup.
func (g *Graph) AddMachineSource(m MachineId) (VertexId, error) {
	id, err := g.AddVertex(Operation{Job: SourceJobID, Op: OperationId(m)})
	if err != nil {
		return NoVertex, err
	}
	g.vertices[id].isSource = true
	g.machineSources[m] = id
	return id, nil
}

// AddTerminal adds the single reserved terminal pseudo-operation.
func (g *Graph) AddTerminal() (VertexId, error) {
	id, err := g.AddVertex(Operation{Job: TerminalJobID, Op: 0})
	if err != nil {
		return NoVertex, err
	}
	g.terminal = id
	return id, nil
}

// MachineSource returns the source vertex for machine m, if added.
func (g *Graph) MachineSource(m MachineId) (VertexId, bool) {
	id, ok := g.machineSources[m]
	return id, ok
}

// Terminal returns the terminal vertex id, or (NoVertex, false) if absent.
func (g *Graph) Terminal() (VertexId, bool) {
	if g.terminal == NoVertex {
		return NoVertex, false
	}
	return g.terminal, true
}

// GraphSources returns every machine-source vertex id (order: ascending
// MachineId is not guaranteed; callers that need determinism should sort).
func (g *Graph) GraphSources() []VertexId {
	out := make([]VertexId, 0, len(g.machineSources))
	for _, id := range g.machineSources {
		out = append(out, id)
	}
	return out
}

// NumVertices returns the number of vertices currently in the graph.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// HasVertex reports whether id is a valid, in-range vertex id.
func (g *Graph) HasVertex(id VertexId) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

// HasOperation reports whether op has a vertex in the graph.
func (g *Graph) HasOperation(op Operation) bool {
	_, ok := g.opIndex[op.Key()]
	return ok
}

// GetVertex resolves an Operation to its VertexId.
func (g *Graph) GetVertex(op Operation) (VertexId, error) {
	id, ok := g.opIndex[op.Key()]
	if !ok {
		return NoVertex, ErrVertexNotFound
	}
	return id, nil
}

// Operation returns the Operation stored at vertex id.
func (g *Graph) Operation(id VertexId) (Operation, error) {
	if !g.HasVertex(id) {
		return Operation{}, ErrVertexOutOfRange
	}
	return g.vertices[id].op, nil
}

// GetVertices returns every vertex id belonging to job j, in insertion order.
func (g *Graph) GetVertices(j JobId) []VertexId {
	return g.jobIndex[j]
}

// GetVerticesRange returns every vertex id belonging to jobs in [jobStart, jobEnd].
func (g *Graph) GetVerticesRange(jobStart, jobEnd JobId) []VertexId {
	var out []VertexId
	for j := jobStart; j <= jobEnd; j++ {
		out = append(out, g.jobIndex[j]...)
	}
	return out
}

// Edge is a realized (src, dst, weight) triple, returned by queries that
// enumerate edges rather than just checking/weighing a single pair.
type Edge struct {
	Src, Dst VertexId
	Weight   Delay
}

// AddEdge inserts or overwrites the edge u->v with weight w, keeping both
// adjacency sides consistent. No parallel edges: re-adding overwrites.
// Complexity: O(1).
func (g *Graph) AddEdge(u, v VertexId, w Delay) error {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return ErrVertexOutOfRange
	}
	g.vertices[u].out[v] = w
	g.vertices[v].in[u] = w
	return nil
}

// AddOrUpdateEdge behaves like AddEdge but reports the resulting Edge record.
func (g *Graph) AddOrUpdateEdge(u, v VertexId, w Delay) (Edge, error) {
	if err := g.AddEdge(u, v, w); err != nil {
		return Edge{}, err
	}
	return Edge{Src: u, Dst: v, Weight: w}, nil
}

// RemoveEdge removes the edge u->v if present; idempotent.
func (g *Graph) RemoveEdge(u, v VertexId) {
	if g.HasVertex(u) {
		delete(g.vertices[u].out, v)
	}
	if g.HasVertex(v) {
		delete(g.vertices[v].in, u)
	}
}

// RemoveEdges removes every edge in the list; idempotent.
func (g *Graph) RemoveEdges(edges []Edge) {
	for _, e := range edges {
		g.RemoveEdge(e.Src, e.Dst)
	}
}

// AddEdges adds every edge in edges and returns only the ones that did not
// previously exist, so the caller can roll back symmetrically via RemoveEdges.
func (g *Graph) AddEdges(edges []Edge) ([]Edge, error) {
	added := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if g.HasEdge(e.Src, e.Dst) {
			// Still overwrite the weight (per AddEdge semantics) but do not
			// report it as newly added.
			if err := g.AddEdge(e.Src, e.Dst, e.Weight); err != nil {
				return added, err
			}
			continue
		}
		if err := g.AddEdge(e.Src, e.Dst, e.Weight); err != nil {
			return added, err
		}
		added = append(added, e)
	}
	return added, nil
}

// HasEdge reports whether an edge u->v exists.
func (g *Graph) HasEdge(u, v VertexId) bool {
	if !g.HasVertex(u) {
		return false
	}
	_, ok := g.vertices[u].out[v]
	return ok
}

// GetWeight returns the weight of edge u->v.
func (g *Graph) GetWeight(u, v VertexId) (Delay, error) {
	if !g.HasVertex(u) {
		return 0, ErrVertexOutOfRange
	}
	w, ok := g.vertices[u].out[v]
	if !ok {
		return 0, ErrEdgeNotFound
	}
	return w, nil
}

// Outgoing returns the outgoing adjacency of u as (dst, weight) pairs. The
// returned slice is freshly allocated; mutating it does not affect the graph.
func (g *Graph) Outgoing(u VertexId) []Edge {
	if !g.HasVertex(u) {
		return nil
	}
	rec := g.vertices[u].out
	out := make([]Edge, 0, len(rec))
	for v, w := range rec {
		out = append(out, Edge{Src: u, Dst: v, Weight: w})
	}
	return out
}

// Incoming returns the incoming adjacency of v as (src, weight) pairs.
func (g *Graph) Incoming(v VertexId) []Edge {
	if !g.HasVertex(v) {
		return nil
	}
	rec := g.vertices[v].in
	out := make([]Edge, 0, len(rec))
	for u, w := range rec {
		out = append(out, Edge{Src: u, Dst: v, Weight: w})
	}
	return out
}

// IsSource reports whether vertex id was registered via AddMachineSource.
func (g *Graph) IsSource(id VertexId) bool {
	if !g.HasVertex(id) {
		return false
	}
	return g.vertices[id].isSource
}

// Clone returns a deep copy of the graph; solvers that need divergent states
// (branch-and-bound, the decision-diagram search) clone rather than mutate
// a shared graph in place.
func (g *Graph) Clone() *Graph {
	ng := &Graph{
		vertices:       make([]vertexRecord, len(g.vertices)),
		opIndex:        make(map[OperationKey]VertexId, len(g.opIndex)),
		jobIndex:       make(map[JobId][]VertexId, len(g.jobIndex)),
		machineSources: make(map[MachineId]VertexId, len(g.machineSources)),
		terminal:       g.terminal,
	}
	for i, v := range g.vertices {
		out := make(map[VertexId]Delay, len(v.out))
		for k, w := range v.out {
			out[k] = w
		}
		in := make(map[VertexId]Delay, len(v.in))
		for k, w := range v.in {
			in[k] = w
		}
		ng.vertices[i] = vertexRecord{op: v.op, out: out, in: in, isSource: v.isSource}
	}
	for k, v := range g.opIndex {
		ng.opIndex[k] = v
	}
	for k, v := range g.jobIndex {
		cp := make([]VertexId, len(v))
		copy(cp, v)
		ng.jobIndex[k] = cp
	}
	for k, v := range g.machineSources {
		ng.machineSources[k] = v
	}
	return ng
}
