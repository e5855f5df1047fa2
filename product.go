package ltlfdfa

// BoolOp names the five connectives under which two MTDFAs can be
// composed (spec.md §4.F).
type BoolOp uint8

const (
	OpAnd BoolOp = iota
	OpOr
	OpImplies
	OpEquiv
	OpXor
)

func (op BoolOp) apply(a, b bool) bool {
	switch op {
	case OpAnd:
		return a && b
	case OpOr:
		return a || b
	case OpImplies:
		return !a || b
	case OpEquiv:
		return a == b
	case OpXor:
		return a != b
	default:
		invariantViolation("BoolOp.apply called with unsupported op %d", op)
		return false
	}
}

func (op BoolOp) combineFormula(forms *formulaTable, x, y *Formula) *Formula {
	switch op {
	case OpAnd:
		return forms.And(x, y)
	case OpOr:
		return forms.Or(x, y)
	case OpImplies:
		return forms.Implies(x, y)
	case OpEquiv:
		return forms.Equiv(x, y)
	case OpXor:
		return forms.Xor(x, y)
	default:
		invariantViolation("BoolOp.combineFormula called with unsupported op %d", op)
		return False_
	}
}

// Operation tags for product.go's apply2/apply1 combinators, in a range
// disjoint from mtbdd_ops.go (0-5, 500), tau.go (100-105) and dfa.go (120).
const (
	opTagProductAnd int32 = 600 + iota
	opTagProductOr
	opTagProductImplies
	opTagProductEquiv
	opTagProductXor
	opTagComplement
)

func opTagForProduct(op BoolOp) int32 { return opTagProductAnd + int32(op) }

// apsCompatible reports whether two AP lists agree on the index of every
// name they share, the product.go-local form of spec.md §6's
// DictionaryMismatch check (VariableDict.Compatible does the same thing
// for whole dictionaries; here the two MTDFAs may come from snapshots of
// the same session dictionary taken at different points in time).
func apsCompatible(a, b []string) bool {
	idxA := make(map[string]int, len(a))
	for i, n := range a {
		idxA[n] = i
	}
	for i, n := range b {
		if j, ok := idxA[n]; ok && j != i {
			return false
		}
	}
	return true
}

func longerAPs(a, b []string) []string {
	if len(b) > len(a) {
		return b
	}
	return a
}

// decodeProductLeaf is the shared (sub-state-or-sink, may-stop) view of an
// MTDFA leaf used by both product exploration and Accepts/stepLetter's
// sink convention (spec.md §4.F): -1 stands for the tt sink, -2 for ff.
func decodeProductLeaf(m *MTBDD, n NodeRef) (int32, bool) {
	switch n {
	case True:
		return sinkTT, true
	case False:
		return sinkFF, false
	default:
		return UnpackPayload(m.Payload(n))
	}
}

// productBuilder explores the reachable subset of the Cartesian state
// space of two MTDFAs under one BoolOp (spec.md §4.F).
type productBuilder struct {
	op      BoolOp
	pairOrd map[[2]int32]int32
	order   [][2]int32
}

func (pb *productBuilder) stateRoot(dfa *MTDFA, idx int32) NodeRef {
	switch idx {
	case sinkTT:
		return True
	case sinkFF:
		return False
	default:
		return dfa.States[idx]
	}
}

// internPair interns (i, j), enqueueing it for exploration on first use.
func (pb *productBuilder) internPair(i, j int32) int32 {
	key := [2]int32{i, j}
	if ord, ok := pb.pairOrd[key]; ok {
		return ord
	}
	ord := int32(len(pb.order))
	pb.pairOrd[key] = ord
	pb.order = append(pb.order, key)
	return ord
}

// combine is apply2's leaf combiner: constant collisions (both operands
// sinks) short-circuit directly to the sink, since a pair of two
// absorbing states is itself absorbing; otherwise the pair is interned as
// an ordinary product state.
func (pb *productBuilder) combine(m *MTBDD, l, r NodeRef) NodeRef {
	pA, bA := decodeProductLeaf(m, l)
	pB, bB := decodeProductLeaf(m, r)
	combined := pb.op.apply(bA, bB)
	if pA < 0 && pB < 0 {
		if combined {
			return True
		}
		return False
	}
	prod := pb.internPair(pA, pB)
	return m.Terminal(PackPayload(prod, combined))
}

func nameFor(dfa *MTDFA, idx int32) *Formula {
	switch idx {
	case sinkTT:
		return True_
	case sinkFF:
		return False_
	default:
		return dfa.Names[idx]
	}
}

// Product computes the synchronous product of a and b under op (spec.md
// §4.F): the resulting MTDFA accepts exactly the combination of L(a) and
// L(b) under op (spec.md §8, "Product equivalence"). a and b must have
// been built from dictionaries compatible with this session's (typically:
// both built by this same Session).
func (s *Session) Product(a, b *MTDFA, op BoolOp) (*MTDFA, error) {
	if !apsCompatible(a.APs, b.APs) {
		return nil, ErrDictionaryMismatch
	}
	// pb.combine interns pairs into this call's own table, so apply2 results
	// cached by an earlier Product call under the same tag are stale here.
	s.bdd.caches.apply2.reset()
	pb := &productBuilder{op: op, pairOrd: map[[2]int32]int32{}}
	pb.internPair(0, 0)

	tag := opTagForProduct(op)
	var states []NodeRef
	for i := 0; i < len(pb.order); i++ {
		pair := pb.order[i]
		rootA := pb.stateRoot(a, pair[0])
		rootB := pb.stateRoot(b, pair[1])
		states = append(states, s.bdd.Apply2(rootA, rootB, tag, pb.combine, nil))
	}

	dfa := &MTDFA{APs: longerAPs(a.APs, b.APs), States: states}
	if a.Names != nil && b.Names != nil {
		names := make([]*Formula, len(pb.order))
		for i, pair := range pb.order {
			names[i] = op.combineFormula(s.forms, nameFor(a, pair[0]), nameFor(b, pair[1]))
		}
		dfa.Names = names
	}
	collapseIfDegenerate(s.bdd, dfa)
	s.log.V(1).Info("computed product", "states", len(dfa.States), "op", op)
	return dfa, nil
}

func complementLeaf(m *MTBDD, n NodeRef) NodeRef {
	switch n {
	case True:
		return False
	case False:
		return True
	default:
		ord, mayStop := UnpackPayload(m.Payload(n))
		return m.Terminal(PackPayload(ord, !mayStop))
	}
}

// Complement negates a's acceptance while keeping its state structure:
// every leaf's may-stop bit flips, constants swap, and every other
// terminal keeps referencing the same state (spec.md §4.F). Per spec.md
// §8, complement(complement(A)) accepts the same language as A.
func (s *Session) Complement(a *MTDFA) *MTDFA {
	states := make([]NodeRef, len(a.States))
	for i, root := range a.States {
		states[i] = s.bdd.Apply1(root, opTagComplement, complementLeaf)
	}
	dfa := &MTDFA{APs: a.APs, States: states, ControllableMask: a.ControllableMask}
	if a.Names != nil {
		names := make([]*Formula, len(a.Names))
		for i, n := range a.Names {
			names[i] = s.forms.Not(n)
		}
		dfa.Names = names
	}
	return dfa
}
