package ltlfdfa

// vertexKind tags the five arena-vertex varieties of spec.md §4.H.
type vertexKind uint8

const (
	vertexOutput   vertexKind = iota // existential owner, one per MTBDD node labelled by a controllable variable
	vertexInput                      // universal owner, one per MTBDD node labelled by an input variable
	vertexTerminal                   // one per state ordinal, a pass-through to that state's root vertex
	vertexWin                        // distinguished winning vertex
	vertexLose                       // distinguished losing vertex
)

const noChoice int32 = -1

// arenaVertex is one node of the bipartite game graph, a pure-data
// representation matching spec.md §9 ("Game arena as pure data. No
// callbacks; the solver is a loop over the reverse adjacency list.").
type arenaVertex struct {
	kind  vertexKind
	state int32 // valid for vertexTerminal: the state ordinal it stands for

	succ []int32 // outgoing edges; vertexTerminal has at most one, added later
	pred []int32 // reverse adjacency, appended whenever an edge into this vertex is created

	frozen     bool // no more edges will ever be added
	determined bool
	winner     bool  // valid iff determined
	choice     int32 // chosen successor vertex id, valid iff determined and the choosing player owns this vertex
}

// Arena is the incrementally-built game graph of spec.md §4.H, one
// instance per synthesis attempt. Variables are partitioned by mask:
// mask[level] == true marks a controllable (output) variable: any level
// at or beyond len(mask) is treated as an input, conservatively attributing
// undeclared variables to the adversary (glossary, "Controllable
// variable").
type Arena struct {
	bdd  *MTBDD
	mask []bool

	vertices    []arenaVertex
	nodeVertex  map[NodeRef]int32 // dedup for output/input vertices, keyed by MTBDD node identity
	stateVertex map[int32]int32   // state ordinal -> its terminal vertex id

	winID, loseID int32
}

// ArenaRenderer is the consumer-supplied hook for external visualization of
// a solved arena (spec.md §6, "A rendered game arena (for external
// visualization), if requested."). The core never implements DOT or graph
// export itself (SPEC_FULL.md Non-goals); callers that want one implement
// this interface against Arena's public accessors.
type ArenaRenderer interface {
	Render(a *Arena) error
}

// NewArena creates an empty arena over bdd with the given controllable
// mask, pre-allocating the two distinguished WIN/LOSE vertices.
func NewArena(bdd *MTBDD, mask []bool) *Arena {
	a := &Arena{
		bdd:         bdd,
		mask:        mask,
		nodeVertex:  map[NodeRef]int32{},
		stateVertex: map[int32]int32{},
	}
	a.winID = a.alloc(arenaVertex{kind: vertexWin, frozen: true, determined: true, winner: true, choice: noChoice})
	a.loseID = a.alloc(arenaVertex{kind: vertexLose, frozen: true, determined: true, winner: false, choice: noChoice})
	return a
}

func (a *Arena) alloc(v arenaVertex) int32 {
	id := int32(len(a.vertices))
	a.vertices = append(a.vertices, v)
	return id
}

func (a *Arena) controllable(level int32) bool {
	return int(level) < len(a.mask) && a.mask[level]
}

func (a *Arena) addEdge(from, to int32) {
	a.vertices[from].succ = append(a.vertices[from].succ, to)
	a.vertices[to].pred = append(a.vertices[to].pred, from)
}

// stateVertexOf lazily allocates the unfrozen terminal vertex standing for
// a state ordinal, used both for back-edges discovered while encoding
// other states' MTBDDs and for AddState/AddDeterminedState's own lookup.
func (a *Arena) stateVertexOf(ord int32) int32 {
	if v, ok := a.stateVertex[ord]; ok {
		return v
	}
	v := a.alloc(arenaVertex{kind: vertexTerminal, state: ord, choice: noChoice})
	a.stateVertex[ord] = v
	return v
}

// encode builds (or reuses) the vertex chain for an MTBDD root, following
// spec.md §4.H: a terminal leaf with its may-stop bit set redirects to
// WIN regardless of its state ordinal (the trace may already stop here
// accepting), constant True/False redirect to WIN/LOSE directly, and every
// other leaf becomes a back-edge to its state's terminal vertex.
func (a *Arena) encode(root NodeRef) int32 {
	switch root {
	case True:
		return a.winID
	case False:
		return a.loseID
	}
	if a.bdd.IsTerminal(root) {
		ord, mayStop := UnpackPayload(a.bdd.Payload(root))
		if mayStop {
			return a.winID
		}
		return a.stateVertexOf(ord)
	}
	if v, ok := a.nodeVertex[root]; ok {
		return v
	}
	level := a.bdd.Level(root)
	lowV := a.encode(a.bdd.Low(root))
	highV := a.encode(a.bdd.High(root))
	kind := vertexInput
	if a.controllable(level) {
		kind = vertexOutput
	}
	v := a.alloc(arenaVertex{kind: kind, choice: noChoice})
	a.addEdge(v, lowV)
	a.addEdge(v, highV)
	a.vertices[v].frozen = true
	a.nodeVertex[root] = v
	a.tryDetermine(v)
	return v
}

// AddState links state ordinal's terminal vertex to the vertex chain
// encoding root, per spec.md §4.H's "a state's root vertex links to the
// MTBDD root." It reports whether the initial vertex (state ordinal 0)
// has become determined, supporting incremental on-the-fly synthesis
// (spec.md §4.H, "incremental construction").
func (a *Arena) AddState(stateOrd int32, root NodeRef) bool {
	v := a.stateVertexOf(stateOrd)
	childV := a.encode(root)
	a.addEdge(v, childV)
	a.vertices[v].frozen = true
	a.tryDetermine(v)
	a.propagate(v)
	return a.InitialDetermined()
}

// AddDeterminedState marks stateOrd's terminal vertex as immediately
// determined without ever building its MTBDD structure (spec.md §4.J step
// 2: "encode the state as determined WIN/LOSE without exploring
// successors"), used by the one-step sat/unsat shortcut.
func (a *Arena) AddDeterminedState(stateOrd int32, winning bool) bool {
	v := a.stateVertexOf(stateOrd)
	a.setDetermined(v, winning, noChoice)
	a.vertices[v].frozen = true
	a.propagate(v)
	return a.InitialDetermined()
}

func (a *Arena) setDetermined(v int32, winner bool, choice int32) {
	a.vertices[v].determined = true
	a.vertices[v].winner = winner
	a.vertices[v].choice = choice
}

// tryDetermine applies the owner-specific determination rule of spec.md
// §4.I ("Arena semantics") to v, given its current successors' status. It
// is idempotent and reports whether v just became determined, which
// propagate uses to decide whether v's own predecessors need revisiting.
func (a *Arena) tryDetermine(v int32) bool {
	vx := &a.vertices[v]
	if vx.determined {
		return false
	}
	switch vx.kind {
	case vertexTerminal:
		if len(vx.succ) == 0 {
			return false
		}
		child := vx.succ[0]
		if a.vertices[child].determined {
			a.setDetermined(v, a.vertices[child].winner, noChoice)
			return true
		}
	case vertexOutput:
		anyUndetermined := false
		for _, s := range vx.succ {
			cv := a.vertices[s]
			if !cv.determined {
				anyUndetermined = true
				continue
			}
			if cv.winner {
				a.setDetermined(v, true, s)
				return true
			}
		}
		if !anyUndetermined {
			a.setDetermined(v, false, vx.succ[0])
			return true
		}
	case vertexInput:
		anyUndetermined := false
		for _, s := range vx.succ {
			cv := a.vertices[s]
			if !cv.determined {
				anyUndetermined = true
				continue
			}
			if !cv.winner {
				a.setDetermined(v, false, s)
				return true
			}
		}
		if !anyUndetermined {
			a.setDetermined(v, true, noChoice)
			return true
		}
	}
	return false
}

// propagate re-evaluates every predecessor reachable from a newly
// determined vertex, per spec.md §4.I's "Determination propagates
// backward through a reverse-adjacency list."
func (a *Arena) propagate(start int32) {
	queue := []int32{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, p := range a.vertices[v].pred {
			if !a.vertices[p].determined && a.tryDetermine(p) {
				queue = append(queue, p)
			}
		}
	}
}

// InitialDetermined reports whether the terminal vertex for state ordinal
// 0 (the automaton's initial state, by construction) has a known winner.
func (a *Arena) InitialDetermined() bool {
	return a.vertices[a.stateVertexOf(0)].determined
}

// InitialWinner reports the winner of the initial vertex; callers must
// check InitialDetermined first.
func (a *Arena) InitialWinner() bool {
	return a.vertices[a.stateVertexOf(0)].winner
}
