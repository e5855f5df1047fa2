package ltlfdfa

// Verdict reports the outcome of a synthesis attempt together with the
// amount of the state space the solver actually had to look at —
// supplementary observability (not part of the core win/lose contract)
// useful for judging how much an early-stopping solve saved.
type Verdict struct {
	Realizable       bool
	StatesExplored   int
	StatesDetermined int
}

// countDeterminedStates counts how many of the first n state vertices
// carry a genuine determination, before finalizeUndetermined forces the
// rest to LOSE.
func countDeterminedStates(arena *Arena, n int) int {
	c := 0
	for i := 0; i < n; i++ {
		if v, ok := arena.stateVertex[int32(i)]; ok && arena.vertices[v].determined {
			c++
		}
	}
	return c
}

// finalizeUndetermined closes out a fully-built arena: any vertex the
// backprop fixpoint never reached is part of a play that forces neither
// WIN nor LOSE in finitely many steps, which for the existential
// (acceptance-seeking) player is a loss (spec.md §4.I's backprop rule only
// ever asserts a winner; it is silent on vertices it never touches, and
// the reachability-game reading of spec.md §3's finite-trace semantics is
// that failing to reach acceptance is losing).
func finalizeUndetermined(arena *Arena) {
	for i := range arena.vertices {
		vx := &arena.vertices[i]
		if vx.determined {
			continue
		}
		vx.determined = true
		vx.winner = false
		if vx.kind == vertexOutput && len(vx.succ) > 0 {
			vx.choice = vx.succ[0]
		} else {
			vx.choice = noChoice
		}
	}
}

// Solve builds the full game arena for dfa under its controllable mask
// and determines it by backprop (spec.md §4.I mode 1), the solving mode
// that also supports strategy extraction. It returns the Mealy-strategy
// MTDFA and a Verdict; an unrealizable dfa yields the 1-state ff
// automaton (spec.md §4.I, "Failure semantics" — a normal return, not an
// error).
func (s *Session) Solve(dfa *MTDFA) (*MTDFA, Verdict) {
	arena := NewArena(s.bdd, dfa.ControllableMask)
	for i, root := range dfa.States {
		arena.AddState(int32(i), root)
	}
	verdict := Verdict{
		StatesExplored:   len(dfa.States),
		StatesDetermined: countDeterminedStates(arena, len(dfa.States)),
	}
	finalizeUndetermined(arena)
	verdict.Realizable = arena.InitialWinner()

	if !verdict.Realizable {
		s.log.V(1).Info("synthesis unrealizable", "states", verdict.StatesExplored)
		return &MTDFA{APs: dfa.APs, States: []NodeRef{False}, Names: []*Formula{False_}}, verdict
	}
	strategy := extractStrategy(s.bdd, dfa, arena)
	s.log.V(1).Info("synthesis realizable", "states", verdict.StatesExplored, "determined", verdict.StatesDetermined)
	return strategy, verdict
}

// extractStrategy rewrites every state of dfa through apply1WithChoice
// (spec.md §4.I, "Strategy extraction"), given a fully-determined arena.
func extractStrategy(bdd *MTBDD, dfa *MTDFA, arena *Arena) *MTDFA {
	memo := map[NodeRef]NodeRef{}
	states := make([]NodeRef, len(dfa.States))
	for i, root := range dfa.States {
		states[i] = rewriteWithChoice(bdd, root, arena, memo)
	}
	out := &MTDFA{APs: dfa.APs, States: states, ControllableMask: dfa.ControllableMask}
	collapseIfDegenerate(bdd, out)
	return out
}

// rewriteWithChoice is apply1_with_choice (spec.md §4.I): at an output
// node, collapse to the single child the arena chose; at a losing leaf,
// replace by 0; at a winning leaf, replace by 1 if its may-stop bit is set,
// else keep pointing at the same state.
func rewriteWithChoice(bdd *MTBDD, n NodeRef, arena *Arena, memo map[NodeRef]NodeRef) NodeRef {
	if v, ok := memo[n]; ok {
		return v
	}
	res := rewriteWithChoiceUncached(bdd, n, arena, memo)
	memo[n] = res
	return res
}

func rewriteWithChoiceUncached(bdd *MTBDD, n NodeRef, arena *Arena, memo map[NodeRef]NodeRef) NodeRef {
	switch n {
	case True:
		return True
	case False:
		return False
	}
	if bdd.IsTerminal(n) {
		ord, mayStop := UnpackPayload(bdd.Payload(n))
		winner := mayStop || arena.vertices[arena.stateVertexOf(ord)].winner
		switch {
		case !winner:
			return False
		case mayStop:
			return True
		default:
			return bdd.Terminal(PackPayload(ord, false))
		}
	}

	v, ok := arena.nodeVertex[n]
	if !ok {
		invariantViolation("rewriteWithChoice: node %d has no arena vertex", n)
	}
	vx := arena.vertices[v]
	if vx.kind == vertexOutput {
		chosen := vx.choice
		if chosen == vx.succ[0] {
			return rewriteWithChoice(bdd, bdd.Low(n), arena, memo)
		}
		return rewriteWithChoice(bdd, bdd.High(n), arena, memo)
	}
	low := rewriteWithChoice(bdd, bdd.Low(n), arena, memo)
	high := rewriteWithChoice(bdd, bdd.High(n), arena, memo)
	return bdd.makeNode(bdd.Level(n), low, high)
}

// rewriteLeavesToWinning folds every terminal of a state's MTBDD down to
// the plain Boolean leaf_is_winning(v) = v.may_stop || won[v.state] of
// spec.md §4.I mode 2, using a call-local memo since won changes between
// LazyFixedPoint's rounds.
func rewriteLeavesToWinning(m *MTBDD, n NodeRef, won []bool, memo map[NodeRef]NodeRef) NodeRef {
	if v, ok := memo[n]; ok {
		return v
	}
	var res NodeRef
	switch {
	case n == True:
		res = True
	case n == False:
		res = False
	case m.IsTerminal(n):
		ord, mayStop := UnpackPayload(m.Payload(n))
		if mayStop || won[ord] {
			res = True
		} else {
			res = False
		}
	default:
		low := rewriteLeavesToWinning(m, m.Low(n), won, memo)
		high := rewriteLeavesToWinning(m, m.High(n), won, memo)
		res = m.makeNode(m.Level(n), low, high)
	}
	memo[n] = res
	return res
}

// quantifyAlternating is bdd_quantify_to_bool (spec.md §4.I mode 2): fold a
// plain Boolean MTBDD down to a constant by existentially quantifying
// output levels (Or) and universally quantifying input levels (And).
func quantifyAlternating(m *MTBDD, n NodeRef, mask []bool, memo map[NodeRef]NodeRef) NodeRef {
	if n == True || n == False {
		return n
	}
	if v, ok := memo[n]; ok {
		return v
	}
	level := m.Level(n)
	low := quantifyAlternating(m, m.Low(n), mask, memo)
	high := quantifyAlternating(m, m.High(n), mask, memo)
	var res NodeRef
	if int(level) < len(mask) && mask[level] {
		res = m.Or(low, high)
	} else {
		res = m.And(low, high)
	}
	memo[n] = res
	return res
}

func equalBoolSlices(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LazyFixedPoint computes realizability alone (no strategy) via spec.md
// §4.I mode 2, iterating won[i] <= bdd_quantify_to_bool(states[i],
// leaf_is_winning) until quiescent or until won[0] flips.
func (s *Session) LazyFixedPoint(dfa *MTDFA) Verdict {
	n := len(dfa.States)
	if n == 0 {
		return Verdict{}
	}
	mask := dfa.ControllableMask
	won := make([]bool, n)
	initial := won[0]

	for {
		next := make([]bool, n)
		for i, root := range dfa.States {
			leafMemo := map[NodeRef]NodeRef{}
			winning := rewriteLeavesToWinning(s.bdd, root, won, leafMemo)
			quantMemo := map[NodeRef]NodeRef{}
			next[i] = quantifyAlternating(s.bdd, winning, mask, quantMemo) == True
		}
		quiescent := equalBoolSlices(next, won)
		won = next
		if quiescent || won[0] != initial {
			break
		}
		initial = won[0]
	}

	determined := 0
	for _, w := range won {
		if w {
			determined++
		}
	}
	return Verdict{Realizable: won[0], StatesExplored: n, StatesDetermined: determined}
}

// ternary is the three-valued true/false/maybe domain of spec.md §4.I
// mode 3, used to tell genuinely undetermined states apart from losing
// ones.
type ternary int8

const (
	ternaryMaybe ternary = iota
	ternaryWin
	ternaryLose
)

func ternaryOr(a, b ternary) ternary {
	switch {
	case a == ternaryWin || b == ternaryWin:
		return ternaryWin
	case a == ternaryMaybe || b == ternaryMaybe:
		return ternaryMaybe
	default:
		return ternaryLose
	}
}

func ternaryAnd(a, b ternary) ternary {
	switch {
	case a == ternaryLose || b == ternaryLose:
		return ternaryLose
	case a == ternaryMaybe || b == ternaryMaybe:
		return ternaryMaybe
	default:
		return ternaryWin
	}
}

// ternaryValue is the three-valued counterpart of
// rewriteLeavesToWinning+quantifyAlternating fused into one value-only
// fold (no MTBDD nodes need building, since the result is a value, not a
// formula).
func ternaryValue(m *MTBDD, n NodeRef, mask []bool, status []ternary, memo map[NodeRef]ternary) ternary {
	if v, ok := memo[n]; ok {
		return v
	}
	var res ternary
	switch {
	case n == True:
		res = ternaryWin
	case n == False:
		res = ternaryLose
	case m.IsTerminal(n):
		ord, mayStop := UnpackPayload(m.Payload(n))
		if mayStop {
			res = ternaryWin
		} else {
			res = status[ord]
		}
	default:
		low := ternaryValue(m, m.Low(n), mask, status, memo)
		high := ternaryValue(m, m.High(n), mask, status, memo)
		level := m.Level(n)
		if int(level) < len(mask) && mask[level] {
			res = ternaryOr(low, high)
		} else {
			res = ternaryAnd(low, high)
		}
	}
	memo[n] = res
	return res
}

func equalTernarySlices(a, b []ternary) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ThreeValuedLazy is spec.md §4.I mode 3: like LazyFixedPoint, but states
// the backprop never reaches stay ternaryMaybe instead of silently
// counting as losing, letting a caller distinguish "proven unrealizable"
// from "not enough exploration yet".
func (s *Session) ThreeValuedLazy(dfa *MTDFA) Verdict {
	n := len(dfa.States)
	if n == 0 {
		return Verdict{}
	}
	mask := dfa.ControllableMask
	status := make([]ternary, n)

	for {
		next := make([]ternary, n)
		memo := map[NodeRef]ternary{}
		for i, root := range dfa.States {
			next[i] = ternaryValue(s.bdd, root, mask, status, memo)
		}
		quiescent := equalTernarySlices(next, status)
		status = next
		if quiescent || status[0] != ternaryMaybe {
			break
		}
	}

	determined := 0
	for _, st := range status {
		if st != ternaryMaybe {
			determined++
		}
	}
	return Verdict{Realizable: status[0] == ternaryWin, StatesExplored: n, StatesDetermined: determined}
}
