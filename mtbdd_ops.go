package ltlfdfa

// LeafOp2 combines two leaves (constants or terminals) of a binary apply.
// Apply2 invokes it only once both operands are leaves; a leaf paired with
// an internal node is first split by cofactor recursion.
type LeafOp2 func(m *MTBDD, l, r NodeRef) NodeRef

// FastOp2 is an optional, purely-Boolean short-circuit used by apply2 when
// both operands are already known to be plain 0/1 BDDs (no terminals
// involved) — e.g. "and-with-zero", "or-with-one".
type FastOp2 func(m *MTBDD, l, r NodeRef) (NodeRef, bool)

// Apply2 is the cofactor-recursion meld of two MTBDDs described in
// spec.md §4.A, generalizing dalzilio-rudd's Apply (operations.go) from a
// fixed 2x2 Boolean truth table to an arbitrary leaf combiner. opTag
// identifies the combiner for cache-sharing purposes; callers must use a
// distinct tag per distinct combiner.
func (m *MTBDD) Apply2(l, r NodeRef, opTag int32, op LeafOp2, fast FastOp2) NodeRef {
	if fast != nil {
		if res, ok := fast(m, l, r); ok {
			return res
		}
	}
	if m.isLeaf(l) && m.isLeaf(r) {
		return op(m, l, r)
	}
	if res, ok := m.caches.apply2.lookup(opTag, l, r); ok {
		return res
	}
	lvL, lvR := m.level(l), m.level(r)
	var level int32
	var lLow, lHigh, rLow, rHigh NodeRef
	switch {
	case lvL == lvR:
		level = lvL
		lLow, lHigh = m.low(l), m.high(l)
		rLow, rHigh = m.low(r), m.high(r)
	case lvL < lvR:
		level = lvL
		lLow, lHigh = m.low(l), m.high(l)
		rLow, rHigh = r, r
	default:
		level = lvR
		lLow, lHigh = l, l
		rLow, rHigh = m.low(r), m.high(r)
	}
	low := m.Apply2(lLow, rLow, opTag, op, fast)
	high := m.Apply2(lHigh, rHigh, opTag, op, fast)
	res := m.makeNode(level, low, high)
	m.caches.apply2.store(opTag, l, r, res)
	return res
}

// LeafOp1 maps a single leaf (constant or terminal) to its replacement, as
// in spec.md §4.A's apply1/apply1_leaves: top and bot are conventionally
// the replacements the caller chooses for the 1 and 0 constants, folded
// into the same callback as the terminal case.
type LeafOp1 func(m *MTBDD, n NodeRef) NodeRef

// Apply1 is the cofactor-recursion rewrite of a single MTBDD where every
// leaf is mapped through op, generalizing dalzilio-rudd's not() (bdd.go)
// and unifying the two unary primitives named in spec.md §4.A (apply1 and
// apply1_leaves are the same recursion; only the leaf mapper differs).
func (m *MTBDD) Apply1(n NodeRef, opTag int32, op LeafOp1) NodeRef {
	if m.isLeaf(n) {
		return op(m, n)
	}
	if res, ok := m.caches.apply1.lookup(opTag, n); ok {
		return res
	}
	level := m.level(n)
	low := m.Apply1(m.low(n), opTag, op)
	high := m.Apply1(m.high(n), opTag, op)
	res := m.makeNode(level, low, high)
	m.caches.apply1.store(opTag, n, res)
	return res
}

// Operation tags shared by the pure-Boolean apply2/apply1 helpers below.
// Component-specific combiners define and use their own tags in disjoint
// ranges to avoid cache collisions with these: tau.go 100-105, dfa.go 120,
// opTagExist below 500, product.go 600-605.
const (
	opTagNot int32 = iota
	opTagAnd
	opTagOr
	opTagXor
	opTagImplies
	opTagEquiv
)

func boolNot(m *MTBDD, n NodeRef) NodeRef {
	if n == False {
		return True
	}
	return False
}

// Not negates a plain Boolean MTBDD (one with no terminal leaves).
func (m *MTBDD) Not(n NodeRef) NodeRef {
	return m.Apply1(n, opTagNot, boolNot)
}

func leafAnd(m *MTBDD, l, r NodeRef) NodeRef {
	if l == False || r == False {
		return False
	}
	if l == True {
		return r
	}
	return l
}

func fastAnd(m *MTBDD, l, r NodeRef) (NodeRef, bool) {
	if l == r {
		return l, true
	}
	if l == False || r == False {
		return False, true
	}
	if l == True {
		return r, true
	}
	if r == True {
		return l, true
	}
	return 0, false
}

// And is the conjunction of two plain Boolean MTBDDs.
func (m *MTBDD) And(l, r NodeRef) NodeRef {
	return m.Apply2(l, r, opTagAnd, leafAnd, fastAnd)
}

func leafOr(m *MTBDD, l, r NodeRef) NodeRef {
	if l == True || r == True {
		return True
	}
	if l == False {
		return r
	}
	return l
}

func fastOr(m *MTBDD, l, r NodeRef) (NodeRef, bool) {
	if l == r {
		return l, true
	}
	if l == True || r == True {
		return True, true
	}
	if l == False {
		return r, true
	}
	if r == False {
		return l, true
	}
	return 0, false
}

// Or is the disjunction of two plain Boolean MTBDDs.
func (m *MTBDD) Or(l, r NodeRef) NodeRef {
	return m.Apply2(l, r, opTagOr, leafOr, fastOr)
}

func leafXor(m *MTBDD, l, r NodeRef) NodeRef {
	switch {
	case l == r:
		return False
	case l == False:
		return r
	case r == False:
		return l
	case l == True:
		return m.Not(r)
	case r == True:
		return m.Not(l)
	}
	invariantViolation("leafXor called with no leaf operand (%d, %d)", l, r)
	return False
}

// Xor is the exclusive-or of two plain Boolean MTBDDs.
func (m *MTBDD) Xor(l, r NodeRef) NodeRef {
	return m.Apply2(l, r, opTagXor, leafXor, nil)
}

func leafImplies(m *MTBDD, l, r NodeRef) NodeRef {
	if l == False {
		return True
	}
	if l == True {
		return r
	}
	if r == True {
		return True
	}
	return m.Not(l)
}

// Implies is the material implication of two plain Boolean MTBDDs.
func (m *MTBDD) Implies(l, r NodeRef) NodeRef {
	return m.Apply2(l, r, opTagImplies, leafImplies, nil)
}

func leafEquiv(m *MTBDD, l, r NodeRef) NodeRef {
	if l == r {
		return True
	}
	if l == True {
		return r
	}
	if r == True {
		return l
	}
	return m.Not(leafXor(m, l, r))
}

// Equiv is the bi-implication of two plain Boolean MTBDDs.
func (m *MTBDD) Equiv(l, r NodeRef) NodeRef {
	return m.Apply2(l, r, opTagEquiv, leafEquiv, nil)
}

// Ite computes (f & g) | (!f & h) for plain Boolean MTBDDs, as in
// dalzilio-rudd's ite (operations.go).
func (m *MTBDD) Ite(f, g, h NodeRef) NodeRef {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case g == True && h == False:
		return f
	case g == False && h == True:
		return m.Not(f)
	}
	return m.Or(m.And(f, g), m.And(m.Not(f), h))
}

// quantState caches which variables are existentially quantified (the
// "controllable" mask in game contexts) together with the variable count
// at the time it was computed, so growth can be detected (spec.md §5).
type quantState struct {
	mask     []bool
	varCount int32
}

// QuantifyPrepare precomputes the per-variable controllable flag used by
// quantification and the game encoder, generalizing dalzilio-rudd's
// quantset2cache (cache.go). It also wipes the quantification cache, whose
// entries were computed against the previous mask.
func (m *MTBDD) QuantifyPrepare(mask []bool) {
	cp := make([]bool, len(mask))
	copy(cp, mask)
	m.quant = &quantState{mask: cp, varCount: m.nvars}
	m.caches.quantify1.reset()
}

// quantifyReady prepares an all-false mask if none was prepared yet, and
// re-runs QuantifyPrepare against the stale mask (padded with false at the
// end for the newly added, higher-index variables) when the variable count
// changed underneath it.
func (m *MTBDD) quantifyReady() {
	if m.quant == nil {
		m.QuantifyPrepare(make([]bool, m.nvars))
		return
	}
	if m.quant.varCount != m.nvars {
		grown := make([]bool, m.nvars)
		copy(grown, m.quant.mask)
		m.QuantifyPrepare(grown)
	}
}

const opTagExist int32 = 500

// Exist computes the existential quantification of n over the variables
// marked true in mask (a plain boolean quantification; the solver's
// bdd_quantify_to_bool of spec.md §4.I is the separate quantifyAlternating
// in solver.go).
func (m *MTBDD) Exist(n NodeRef, mask []bool) NodeRef {
	m.QuantifyPrepare(mask)
	return m.quantifyExist(n)
}

func (m *MTBDD) quantifyExist(n NodeRef) NodeRef {
	if m.isLeaf(n) || m.nodes[n].level >= m.quant.varCount {
		return n
	}
	if res, ok := m.caches.quantify1.lookup(opTagExist, n); ok {
		return res
	}
	low := m.quantifyExist(m.low(n))
	high := m.quantifyExist(m.high(n))
	var res NodeRef
	if m.quant.mask[m.nodes[n].level] {
		res = m.Or(low, high)
	} else {
		res = m.makeNode(m.nodes[n].level, low, high)
	}
	m.caches.quantify1.store(opTagExist, n, res)
	return res
}

// Cube is a conjunction of literals, selecting one branch per decision
// variable (spec.md glossary). Assignment holds a literal per level: +1
// for a positive literal, -1 for a negative one, 0 for "don't care".
type Cube struct {
	Assignment []int8
}

// PathsOf iterates the accepted cubes of b and their leaves in
// deterministic DFS order (low branch first), generalizing
// dalzilio-rudd's Allsat (operations.go) from a single satisfying-leaf
// notion to arbitrary terminal leaves.
func (m *MTBDD) PathsOf(b NodeRef, numVars int32, f func(Cube, NodeRef) error) error {
	assignment := make([]int8, numVars)
	return m.pathsOf(b, assignment, f)
}

func (m *MTBDD) pathsOf(n NodeRef, assignment []int8, f func(Cube, NodeRef) error) error {
	if m.isLeaf(n) {
		cp := make([]int8, len(assignment))
		copy(cp, assignment)
		return f(Cube{Assignment: cp}, n)
	}
	lvl := m.nodes[n].level
	assignment[lvl] = -1
	if err := m.pathsOf(m.nodes[n].low, assignment, f); err != nil {
		return err
	}
	assignment[lvl] = 1
	if err := m.pathsOf(m.nodes[n].high, assignment, f); err != nil {
		return err
	}
	assignment[lvl] = 0
	return nil
}

// LeavesOf returns the deduplicated set of leaves reachable from b,
// generalizing dalzilio-rudd's Allnodes (operations.go/hudd.go) restricted
// to leaves.
func (m *MTBDD) LeavesOf(b NodeRef) []NodeRef {
	seen := map[NodeRef]bool{}
	var leaves []NodeRef
	var walk func(NodeRef)
	walk = func(n NodeRef) {
		if seen[n] {
			return
		}
		seen[n] = true
		if m.isLeaf(n) {
			leaves = append(leaves, n)
			return
		}
		walk(m.nodes[n].low)
		walk(m.nodes[n].high)
	}
	walk(b)
	return leaves
}
