package ltlfdfa

// computeSignature rewrites root by substituting every terminal's state
// ordinal through class (spec.md §4.G): a state's signature is its
// transition MTBDD with successor references replaced by class membership
// rather than raw state ordinal. Constants fold into the two synthetic
// tt/ff classes (sinkTT, sinkFF) so that a state whose signature later
// turns out to equal the bare constant is recognized on the same footing
// as a state that merely *transitions into* one.
//
// This recursion keeps its own memo rather than going through the shared
// apply1 cache (mtbdd_ops.go), because class is mutated between iterations
// of Minimize and a shared, opTag-keyed cache would return stale results
// from a previous iteration's class mapping — exactly the "dedicated,
// caller-owned cache" lifecycle of spec.md §5.
func computeSignature(m *MTBDD, root NodeRef, class []int32, memo map[NodeRef]NodeRef) NodeRef {
	if v, ok := memo[root]; ok {
		return v
	}
	var res NodeRef
	switch {
	case root == True:
		res = m.Terminal(PackPayload(sinkTT, true))
	case root == False:
		res = m.Terminal(PackPayload(sinkFF, false))
	case m.IsTerminal(root):
		ord, b := UnpackPayload(m.Payload(root))
		res = m.Terminal(PackPayload(class[ord], b))
	default:
		low := computeSignature(m, m.Low(root), class, memo)
		high := computeSignature(m, m.High(root), class, memo)
		res = m.makeNode(m.Level(root), low, high)
	}
	memo[root] = res
	return res
}

// regroupBySignature assigns fresh sequential class ids in
// signature-discovery order (state 0 scanned first, so class 0 always
// remains the initial state's class), forcing any state whose signature
// is exactly a constant into the corresponding reserved sink class
// (spec.md §4.G, "force its class index to a reserved slot").
func regroupBySignature(sigs []NodeRef, n int32) []int32 {
	groupOf := make(map[NodeRef]int32, n)
	next := int32(0)
	class := make([]int32, n)
	for k := int32(0); k < n; k++ {
		switch sigs[k] {
		case True:
			class[k] = sinkTT
		case False:
			class[k] = sinkFF
		default:
			if id, ok := groupOf[sigs[k]]; ok {
				class[k] = id
			} else {
				id = next
				next++
				groupOf[sigs[k]] = id
				class[k] = id
			}
		}
	}
	return class
}

func equalClassings(a, b []int32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dropSyntheticSinks is the closing rewrite of spec.md §4.G's final pass:
// any terminal still tagged with a synthetic sink class is replaced by the
// literal constant it stands for, since a sink class's behavior is by
// construction identical to that constant.
func dropSyntheticSinks(m *MTBDD, root NodeRef, memo map[NodeRef]NodeRef) NodeRef {
	if v, ok := memo[root]; ok {
		return v
	}
	var res NodeRef
	switch {
	case root == True || root == False:
		res = root
	case m.IsTerminal(root):
		ord, _ := UnpackPayload(m.Payload(root))
		switch ord {
		case sinkTT:
			res = True
		case sinkFF:
			res = False
		default:
			res = root
		}
	default:
		low := dropSyntheticSinks(m, m.Low(root), memo)
		high := dropSyntheticSinks(m, m.High(root), memo)
		res = m.makeNode(m.Level(root), low, high)
	}
	memo[root] = res
	return res
}

// Minimize computes the Moore-style quotient of dfa (spec.md §4.G):
// |states(Minimize(A))| <= |states(A)| and Minimize(A) accepts exactly
// L(A) (spec.md §8). Iterating Minimize again is idempotent up to state
// renumbering.
func (s *Session) Minimize(dfa *MTDFA) *MTDFA {
	n := int32(len(dfa.States))
	class := make([]int32, n)
	var sigs []NodeRef

	for {
		memo := map[NodeRef]NodeRef{}
		sigs = make([]NodeRef, n)
		for k := int32(0); k < n; k++ {
			sigs[k] = computeSignature(s.bdd, dfa.States[k], class, memo)
		}
		newClass := regroupBySignature(sigs, n)
		if equalClassings(newClass, class) {
			class = newClass
			break
		}
		class = newClass
	}

	if n > 0 {
		switch class[0] {
		case sinkTT:
			return &MTDFA{APs: dfa.APs, States: []NodeRef{True}, Names: []*Formula{True_}}
		case sinkFF:
			return &MTDFA{APs: dfa.APs, States: []NodeRef{False}, Names: []*Formula{False_}}
		}
	}

	repOf := map[int32]int32{}
	numClasses := int32(0)
	for k := int32(0); k < n; k++ {
		if class[k] < 0 {
			continue
		}
		if _, ok := repOf[class[k]]; !ok {
			repOf[class[k]] = k
		}
		if class[k]+1 > numClasses {
			numClasses = class[k] + 1
		}
	}

	dropMemo := map[NodeRef]NodeRef{}
	states := make([]NodeRef, numClasses)
	for c := int32(0); c < numClasses; c++ {
		states[c] = dropSyntheticSinks(s.bdd, sigs[repOf[c]], dropMemo)
	}

	out := &MTDFA{APs: dfa.APs, States: states, ControllableMask: dfa.ControllableMask}
	if dfa.Names != nil {
		names := make([]*Formula, numClasses)
		for c := int32(0); c < numClasses; c++ {
			names[c] = dfa.Names[repOf[c]]
		}
		out.Names = names
	}
	s.log.V(1).Info("minimized MTDFA", "before", n, "after", numClasses)
	return out
}
