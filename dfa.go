package ltlfdfa

// explorationMode selects the worklist discipline used by Explore and by
// the on-the-fly synthesis loop (spec.md §4.E/§4.J).
type explorationMode uint8

const (
	// ExploreBFS discovers states breadth-first; state ordinals are
	// assigned in level order from the initial state.
	ExploreBFS explorationMode = iota
	// ExploreDFS discovers states depth-first, re-traversing states it
	// has already finished processing whenever they are reached again
	// (meaningful once a caller layers undetermined-successor pruning on
	// top, as onthefly.go does; the plain builder's single visited set
	// already prevents duplicate state creation either way).
	ExploreDFS
	// ExploreDFSStrict is ExploreDFS but never re-traverses an
	// already-seen state's successors at all, even to re-check
	// determination — the cycle-avoiding variant of spec.md §4.I step 6.
	ExploreDFSStrict
)

// sinkTT and sinkFF are the two sink-state sentinels shared by product.go
// and Accepts: -1 stands for the single-state tt automaton, -2 for ff
// (spec.md §4.F).
const (
	sinkTT = -1
	sinkFF = -2
)

// MTDFA is the symbolic DFA of spec.md §3: a list of atomic propositions,
// one MTBDD root per state (its outgoing one-step transition function),
// and two optional annotations: the originating formula per state (used
// by Accepts to resolve empty-trace acceptance) and a controllable-
// variable mask (used by arena.go to build a game from this automaton).
type MTDFA struct {
	APs              []string
	States           []NodeRef
	Names            []*Formula
	ControllableMask []bool
}

// exploreResult bundles everything the builder's worklist loop produces
// before the final terminal-payload rewrite pass.
type exploreResult struct {
	order      []int32 // intern ordinal, indexed by state ordinal
	roots      map[int32]NodeRef
	stateOfOrd map[int32]int32
}

// Explore builds the MTDFA reachable from f, per the component-E
// algorithm of spec.md §4.E: a worklist of canonical formulas (keyed by
// their TerminalTable intern ordinal), τ applied to discover each state's
// transition MTBDD and successor formulas, optional one-step-rewrite
// shortcuts, optional structural fusion of states whose τ happens to
// produce the exact same MTBDD node (hash-consing already guarantees
// structural equality implies identical NodeRef), and a final pass
// rewriting every terminal's intern ordinal into a state ordinal.
//
// Explore validates f first (spec.md §7.1) and returns ErrUnsupportedOperator
// without exploring anything if f or any of its descendants carries a Kind
// outside the closed set, or the wrong number of children for its Kind.
func (s *Session) Explore(f *Formula) (*MTDFA, error) {
	if err := validateFormula(f); err != nil {
		return nil, err
	}
	f = s.canon.Canonicalize(f)
	ord0 := s.terms.Intern(f)

	res := s.exploreWorklist(ord0)

	states := make([]NodeRef, len(res.order))
	names := make([]*Formula, len(res.order))
	for i, ord := range res.order {
		states[i] = res.roots[ord]
		names[i] = s.terms.FormulaAt(ord)
	}
	states = rewriteStateTerminals(s.bdd, states, res.stateOfOrd)

	dfa := &MTDFA{APs: s.dict.Names(), States: states, Names: names}
	collapseIfDegenerate(s.bdd, dfa)
	s.log.V(1).Info("explored MTDFA", "states", len(dfa.States))
	return dfa, nil
}

func (s *Session) exploreWorklist(ord0 int32) exploreResult {
	seen := map[int32]bool{ord0: true}
	queue := []int32{ord0}
	byRoot := map[NodeRef]int32{}
	res := exploreResult{roots: map[int32]NodeRef{}, stateOfOrd: map[int32]int32{}}

	dfs := s.cfg.exploration != ExploreBFS
	for len(queue) > 0 {
		var ord int32
		if dfs {
			ord = queue[len(queue)-1]
			queue = queue[:len(queue)-1]
		} else {
			ord = queue[0]
			queue = queue[1:]
		}

		f := s.terms.FormulaAt(ord)
		root, ok := s.oneStepShortcut(f)
		if !ok {
			root = s.tr.Tau(f)
		}

		if fused, ok := byRoot[root]; ok {
			res.stateOfOrd[ord] = fused
			continue
		}
		stateOrd := int32(len(res.order))
		res.order = append(res.order, ord)
		res.roots[ord] = root
		res.stateOfOrd[ord] = stateOrd
		byRoot[root] = stateOrd

		for _, leaf := range s.bdd.LeavesOf(root) {
			if s.bdd.IsConstant(leaf) {
				continue
			}
			leafOrd, _ := UnpackPayload(s.bdd.Payload(leaf))
			if !seen[leafOrd] {
				seen[leafOrd] = true
				queue = append(queue, leafOrd)
			}
		}
	}
	return res
}

// rewriteStateTerminals is the final pass of spec.md §4.E step 4: every
// terminal payload 2k+b (k an intern ordinal) becomes 2·stateOf[k]+b.
func rewriteStateTerminals(m *MTBDD, states []NodeRef, stateOf map[int32]int32) []NodeRef {
	remap := func(mm *MTBDD, n NodeRef) NodeRef {
		if mm.IsConstant(n) {
			return n
		}
		ord, mayStop := UnpackPayload(mm.Payload(n))
		return mm.Terminal(PackPayload(stateOf[ord], mayStop))
	}
	// remap depends on this call's stateOf, so apply1 results cached by an
	// earlier call under opTagStateRewrite are stale here.
	m.caches.apply1.reset()
	out := make([]NodeRef, len(states))
	for i, root := range states {
		out[i] = m.Apply1(root, opTagStateRewrite, remap)
	}
	return out
}

const opTagStateRewrite int32 = 120

// collapseIfDegenerate implements spec.md §4.E's closing paragraph: if no
// accepting leaf was ever produced, the whole automaton collapses to the
// single state ff; dually for no rejecting leaf.
func collapseIfDegenerate(m *MTBDD, dfa *MTDFA) {
	sawAccepting, sawRejecting := false, false
	for _, root := range dfa.States {
		for _, leaf := range m.LeavesOf(root) {
			switch {
			case leaf == True:
				sawAccepting = true
			case leaf == False:
				sawRejecting = true
			default:
				_, mayStop := UnpackPayload(m.Payload(leaf))
				if mayStop {
					sawAccepting = true
				} else {
					sawRejecting = true
				}
			}
		}
	}
	switch {
	case !sawAccepting:
		dfa.States = []NodeRef{False}
		dfa.Names = []*Formula{False_}
	case !sawRejecting:
		dfa.States = []NodeRef{True}
		dfa.Names = []*Formula{True_}
	}
}

// emptyTraceHolds evaluates f's LTLf semantics on the trace of length
// zero directly (spec.md §8's boundary behaviors generalized): weak next
// and "always" are vacuously true, strong next/eventually/until/strong
// release require a position that does not exist and are false, atomic
// propositions are false, and weak-until/release inherit the vacuous
// truth of their "always" disjunct.
func emptyTraceHolds(f *Formula) bool {
	switch f.Kind {
	case KindTrue:
		return true
	case KindFalse, KindAtom:
		return false
	case KindNot:
		return !emptyTraceHolds(f.Children[0])
	case KindAnd:
		for _, c := range f.Children {
			if !emptyTraceHolds(c) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range f.Children {
			if emptyTraceHolds(c) {
				return true
			}
		}
		return false
	case KindXor:
		acc := false
		for _, c := range f.Children {
			acc = acc != emptyTraceHolds(c)
		}
		return acc
	case KindImplies:
		return !emptyTraceHolds(f.Children[0]) || emptyTraceHolds(f.Children[1])
	case KindEquiv:
		return emptyTraceHolds(f.Children[0]) == emptyTraceHolds(f.Children[1])
	case KindX, KindG, KindW, KindR:
		return true
	case KindStrongX, KindF, KindU, KindM:
		return false
	default:
		invariantViolation("emptyTraceHolds called on formula with unsupported kind %v", f.Kind)
		return false
	}
}

// Accepts replays word (one map of true atomic propositions per step)
// through the MTDFA starting at state 0 and reports whether the finite
// trace is accepted (spec.md §8's scenario tests), the Go-native
// counterpart of the reference pipeline's trace-acceptance check
// (original_source/Automata_Reasoning/trace_checker.py checks an
// analogous notion against Spot's HOA automata). Sink states use the
// -1 (tt)/-2 (ff) sentinels of spec.md §4.F.
func (d *MTDFA) Accepts(bdd *MTBDD, dict *VariableDict, word []map[string]bool) bool {
	if len(word) == 0 {
		if d.Names == nil {
			invariantViolation("Accepts: empty-trace acceptance requires MTDFA.Names")
		}
		return emptyTraceHolds(d.Names[0])
	}
	state := 0
	mayStop := false
	for _, letter := range word {
		var root NodeRef
		switch state {
		case sinkTT:
			root = True
		case sinkFF:
			root = False
		default:
			root = d.States[state]
		}
		state, mayStop = stepLetter(bdd, dict, root, letter)
	}
	return mayStop
}

func stepLetter(bdd *MTBDD, dict *VariableDict, root NodeRef, letter map[string]bool) (int, bool) {
	cur := root
	for !bdd.IsConstant(cur) && !bdd.IsTerminal(cur) {
		name := dict.Name(bdd.Level(cur))
		if letter[name] {
			cur = bdd.High(cur)
		} else {
			cur = bdd.Low(cur)
		}
	}
	switch cur {
	case True:
		return sinkTT, true
	case False:
		return sinkFF, false
	default:
		ord, mayStop := UnpackPayload(bdd.Payload(cur))
		return int(ord), mayStop
	}
}
