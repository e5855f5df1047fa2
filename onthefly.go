package ltlfdfa

// Synthesize fuses τ (tau.go), the arena encoder (arena.go) and the
// backprop solver (solver.go) into one worklist loop over formulas
// (spec.md §4.J), stopping the moment the initial vertex is determined
// rather than building the whole reachable automaton first. mask
// partitions the atomic propositions τ discovers into controllable
// (true) and uncontrollable (false); propositions beyond len(mask) are
// conservatively treated as uncontrollable.
//
// Synthesize validates f first (spec.md §7.1) and returns
// ErrUnsupportedOperator without exploring anything if f or any of its
// descendants carries a Kind outside the closed set, or the wrong number
// of children for its Kind.
func (s *Session) Synthesize(f *Formula, mask []bool) (*MTDFA, Verdict, error) {
	if err := validateFormula(f); err != nil {
		return nil, Verdict{}, err
	}
	f = s.canon.Canonicalize(f)
	ord0 := s.terms.Intern(f)

	arena := NewArena(s.bdd, mask)
	visited := map[int32]bool{}
	roots := map[int32]NodeRef{}
	var order []int32
	queue := []int32{ord0}

	dfs := s.cfg.exploration != ExploreBFS
	strict := s.cfg.exploration == ExploreDFSStrict
	stopped := false

	pop := func() int32 {
		var ord int32
		if dfs {
			ord = queue[len(queue)-1]
			queue = queue[:len(queue)-1]
		} else {
			ord = queue[0]
			queue = queue[1:]
		}
		return ord
	}

	// enqueueSuccessor is step 6: a successor already known determined
	// needs no further exploration. A never-seen successor is always
	// queued. An already-seen one is requeued only in the plain DFS mode,
	// which re-traverses already-seen states to keep collecting
	// undetermined successors; DFS-strict and BFS move strictly forward.
	enqueueSuccessor := func(leafOrd int32) {
		if arena.vertices[arena.stateVertexOf(leafOrd)].determined {
			return
		}
		if !visited[leafOrd] {
			queue = append(queue, leafOrd)
			return
		}
		if dfs && !strict {
			queue = append(queue, leafOrd)
		}
	}

	enqueueAllSuccessors := func(root NodeRef) {
		for _, leaf := range s.bdd.LeavesOf(root) {
			if s.bdd.IsConstant(leaf) {
				continue
			}
			leafOrd, _ := UnpackPayload(s.bdd.Payload(leaf))
			enqueueSuccessor(leafOrd)
		}
	}

	for len(queue) > 0 && !stopped {
		ord := pop()
		if strict && visited[ord] {
			continue
		}
		if visited[ord] {
			if root, ok := roots[ord]; ok && !arena.vertices[arena.stateVertexOf(ord)].determined {
				enqueueAllSuccessors(root)
			}
			continue
		}
		visited[ord] = true
		order = append(order, ord)

		fml := s.terms.FormulaAt(ord)
		if shortcut, isConst := s.oneStepShortcut(fml); isConst {
			if arena.AddDeterminedState(ord, shortcut == True) {
				stopped = true
			}
			continue
		}

		root := s.tr.Tau(fml)
		roots[ord] = root
		if arena.AddState(ord, root) {
			stopped = true
			continue
		}
		if arena.vertices[arena.stateVertexOf(ord)].determined {
			continue // rule 5: already determined, don't chase successors
		}
		enqueueAllSuccessors(root)
	}

	determinedBeforeFinalize := 0
	for _, ord := range order {
		if v, ok := arena.stateVertex[ord]; ok && arena.vertices[v].determined {
			determinedBeforeFinalize++
		}
	}
	finalizeUndetermined(arena)

	verdict := Verdict{
		Realizable:       arena.InitialWinner(),
		StatesExplored:   len(order),
		StatesDetermined: determinedBeforeFinalize,
	}
	s.log.V(1).Info("on-the-fly synthesis finished", "realizable", verdict.Realizable,
		"explored", verdict.StatesExplored, "determined", verdict.StatesDetermined)

	if !verdict.Realizable {
		return &MTDFA{APs: s.dict.Names(), States: []NodeRef{False}, Names: []*Formula{False_}}, verdict, nil
	}

	stateOf := make(map[int32]int32, len(order))
	for i, ord := range order {
		stateOf[ord] = int32(i)
	}
	memo := map[NodeRef]NodeRef{}
	perOrd := make([]NodeRef, len(order))
	names := make([]*Formula, len(order))
	for i, ord := range order {
		names[i] = s.terms.FormulaAt(ord)
		if root, ok := roots[ord]; ok {
			perOrd[i] = rewriteWithChoice(s.bdd, root, arena, memo)
			continue
		}
		if arena.vertices[arena.stateVertexOf(ord)].winner {
			perOrd[i] = True
		} else {
			perOrd[i] = False
		}
	}
	states := rewriteStateTerminals(s.bdd, perOrd, stateOf)

	strategy := &MTDFA{APs: s.dict.Names(), States: states, Names: names, ControllableMask: mask}
	collapseIfDegenerate(s.bdd, strategy)
	return strategy, verdict, nil
}
