package ltlfdfa

// NodeRef is the address of a node in an MTBDD. The two constants are
// always at id 0 (false) and 1 (true); every other id is either an
// internal decision node or a terminal leaf. NodeRef is a plain value
// (not a pointer, unlike the teacher's refcounted Node): a Session's
// MTBDD engine never garbage collects during translation (spec.md §3,
// "Lifecycles"), so there is nothing to reference count.
type NodeRef int32

// False and True are the two constant leaves, always present at these ids.
const (
	False NodeRef = 0
	True  NodeRef = 1
)

// levelTerminal marks a terminal leaf in mtNode.level. Terminal leaves do
// not have low/high children; their payload (2*ordinal+mayStop, see
// terminal.go) is stored in the node's high field.
const levelTerminal int32 = -1

// mtNode is one node of the shared node table. For an internal node, level
// is the decision variable's index and low/high are the ids of its two
// children, each with a strictly larger variable index (or a constant/
// terminal). For a terminal leaf, level is levelTerminal and high carries
// the payload; low is unused (kept at -1 for clarity when inspected).
type mtNode struct {
	level int32
	low   NodeRef
	high  NodeRef
}

// internalKey is the unique-table key for internal nodes, generalizing the
// (level, low, high) triplet hashed in dalzilio-rudd's hudd.go, but using a
// plain Go map instead of a hand-rolled byte-hash table.
type internalKey struct {
	level int32
	low   NodeRef
	high  NodeRef
}

// MTBDD is the shared-node DAG described in spec.md §4.A: a reduced,
// ordered decision diagram over Boolean variables, extended with terminal
// leaves carrying an integer payload. It is owned exclusively by one
// Session (spec.md §5); concurrent translations must use disjoint
// instances.
type MTBDD struct {
	nvars int32 // number of declared Boolean variables

	nodes    []mtNode
	nextFree int32 // next unused slot; the table never shrinks or reclaims

	internalUnique map[internalKey]NodeRef
	terminalUnique map[int32]NodeRef
	varNodes       [][2]NodeRef // [level] -> (positive, negative) variable node, built lazily

	maxNodeSize int32 // 0 means unlimited

	quant *quantState // cached quantification mask, invalidated by variable growth

	caches mtbddCaches
}

// NewMTBDD creates an empty MTBDD engine for an initial number of Boolean
// variables. Additional variables can be declared later with GrowVars; per
// spec.md §3 the variable ordering is otherwise fixed once nodes reference
// it.
func NewMTBDD(initialVars int, opts ...MTBDDOption) *MTBDD {
	cfg := defaultMTBDDConfig()
	for _, o := range opts {
		o(&cfg)
	}
	nodeSize := cfg.nodeSize
	if nodeSize < 2*initialVars+2 {
		nodeSize = 2*initialVars + 2
	}
	m := &MTBDD{
		nvars:          int32(initialVars),
		nodes:          make([]mtNode, nodeSize),
		nextFree:       2,
		internalUnique: make(map[internalKey]NodeRef, nodeSize),
		terminalUnique: make(map[int32]NodeRef, nodeSize/4+1),
		varNodes:       make([][2]NodeRef, initialVars),
		maxNodeSize:    int32(cfg.maxNodeSize),
	}
	m.nodes[False] = mtNode{level: m.nvars, low: False, high: False}
	m.nodes[True] = mtNode{level: m.nvars, low: True, high: True}
	m.caches = newMTBDDCaches(cfg.cacheSize, cfg.cacheRatio)
	for i := 0; i < initialVars; i++ {
		m.varNodes[i] = [2]NodeRef{-1, -1}
	}
	return m
}

// Varnum returns the number of declared Boolean variables.
func (m *MTBDD) Varnum() int { return int(m.nvars) }

// GrowVars increases the number of declared variables to n. It is a no-op
// if n is not larger than the current count. Per spec.md §5, this
// invalidates any cached quantification precomputation; operation caches
// remain valid, since they are keyed by node identity, which growth never
// changes.
func (m *MTBDD) GrowVars(n int) {
	if int32(n) <= m.nvars {
		return
	}
	for i := m.nvars; i < int32(n); i++ {
		m.varNodes = append(m.varNodes, [2]NodeRef{-1, -1})
	}
	m.nvars = int32(n)
	m.nodes[False].level = m.nvars
	m.nodes[True].level = m.nvars
}

func (m *MTBDD) isLeaf(n NodeRef) bool {
	return n == False || n == True || m.nodes[n].level == levelTerminal
}

// IsConstant reports whether n is one of the two constant leaves.
func (m *MTBDD) IsConstant(n NodeRef) bool { return n == False || n == True }

// IsTerminal reports whether n is a terminal leaf (as opposed to a
// constant or an internal decision node).
func (m *MTBDD) IsTerminal(n NodeRef) bool {
	return n != False && n != True && m.nodes[n].level == levelTerminal
}

// Payload returns the integer payload carried by a terminal leaf. It
// panics (an invariant violation, §7.3) if n is not a terminal.
func (m *MTBDD) Payload(n NodeRef) int32 {
	if !m.IsTerminal(n) {
		invariantViolation("Payload called on non-terminal node %d", n)
	}
	return int32(m.nodes[n].high)
}

// Level returns the decision variable of an internal node. It panics if n
// is a leaf.
func (m *MTBDD) Level(n NodeRef) int32 {
	if m.isLeaf(n) {
		invariantViolation("Level called on leaf node %d", n)
	}
	return m.nodes[n].level
}

// Low returns the false-branch child of an internal node.
func (m *MTBDD) Low(n NodeRef) NodeRef {
	if m.isLeaf(n) {
		invariantViolation("Low called on leaf node %d", n)
	}
	return m.nodes[n].low
}

// High returns the true-branch child of an internal node.
func (m *MTBDD) High(n NodeRef) NodeRef {
	if m.isLeaf(n) {
		invariantViolation("High called on leaf node %d", n)
	}
	return m.nodes[n].high
}

func (m *MTBDD) level(n NodeRef) int32 {
	if m.isLeaf(n) {
		return m.nvars // leaves sort after every real variable
	}
	return m.nodes[n].level
}

func (m *MTBDD) low(n NodeRef) NodeRef {
	if m.isLeaf(n) {
		return n
	}
	return m.nodes[n].low
}

func (m *MTBDD) high(n NodeRef) NodeRef {
	if m.isLeaf(n) {
		return n
	}
	return m.nodes[n].high
}

// Terminal returns the canonical node for a given integer payload,
// creating it on first use. Two requests for the same payload always
// return the same NodeRef (spec.md §3: "Nodes are canonical").
func (m *MTBDD) Terminal(payload int32) NodeRef {
	if id, ok := m.terminalUnique[payload]; ok {
		return id
	}
	id := m.allocNode(mtNode{level: levelTerminal, low: -1, high: NodeRef(payload)})
	m.terminalUnique[payload] = id
	return id
}

// Ithvar returns the node for the i'th Boolean variable in its positive
// form.
func (m *MTBDD) Ithvar(level int32) NodeRef {
	m.ensureVar(level)
	if m.varNodes[level][0] == -1 {
		m.varNodes[level][0] = m.makeNode(level, False, True)
		m.varNodes[level][1] = m.makeNode(level, True, False)
	}
	return m.varNodes[level][0]
}

// NIthvar returns the node for the negation of the i'th Boolean variable.
func (m *MTBDD) NIthvar(level int32) NodeRef {
	m.Ithvar(level) // ensures both are built together
	return m.varNodes[level][1]
}

func (m *MTBDD) ensureVar(level int32) {
	if level >= m.nvars {
		m.GrowVars(int(level) + 1)
	}
}

// makeNode is the canonical constructor for internal nodes: it enforces
// reducedness (low == high collapses to that child) and uniqueness (the
// same (level, low, high) triple always yields the same id).
func (m *MTBDD) makeNode(level int32, low, high NodeRef) NodeRef {
	if low == high {
		return low
	}
	key := internalKey{level: level, low: low, high: high}
	if id, ok := m.internalUnique[key]; ok {
		return id
	}
	id := m.allocNode(mtNode{level: level, low: low, high: high})
	m.internalUnique[key] = id
	return id
}

func (m *MTBDD) allocNode(n mtNode) NodeRef {
	if m.nextFree >= int32(len(m.nodes)) {
		m.growNodeTable()
	}
	id := m.nextFree
	m.nodes[id] = n
	m.nextFree++
	return NodeRef(id)
}
