package ltlfdfa

import "testing"

func TestEmptyTraceHolds(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p := forms.Atom("p")

	cases := []struct {
		name string
		f    *Formula
		want bool
	}{
		{"tt", True_, true},
		{"ff", False_, false},
		{"atom", p, false},
		{"X p", forms.X(p), true},
		{"strong_X p", forms.StrongX(p), false},
		{"G p", forms.G(p), true},
		{"F p", forms.F(p), false},
		{"p U p", forms.U(p, p), false},
		{"p W p", forms.W(p, p), true},
		{"p R p", forms.R(p, p), true},
	}
	for _, c := range cases {
		if got := emptyTraceHolds(c.f); got != c.want {
			t.Errorf("emptyTraceHolds(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func word(assignments ...map[string]bool) []map[string]bool { return assignments }

func mustExplore(t *testing.T, s *Session, f *Formula) *MTDFA {
	t.Helper()
	dfa, err := s.Explore(f)
	if err != nil {
		t.Fatalf("Explore(%v) returned error: %v", f, err)
	}
	return dfa
}

func TestExploreBooleanConjunction(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	dfa := mustExplore(t, s, forms.And(p, q))

	if dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts([]) = true for (p && q), want false")
	}
	if !dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{"p": true, "q": true})) {
		t.Errorf("Accepts([p&&q]) = false, want true")
	}
	if dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{"p": true, "q": false})) {
		t.Errorf("Accepts([p&&!q]) = true, want false")
	}
}

func TestExploreSafetyG(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p := forms.Atom("p")
	dfa := mustExplore(t, s, forms.G(p))

	allTrue := word(map[string]bool{"p": true}, map[string]bool{"p": true}, map[string]bool{"p": true})
	if !dfa.Accepts(s.bdd, s.Dict(), allTrue) {
		t.Errorf("Accepts(G p, [p,p,p]) = false, want true")
	}
	withFailure := word(map[string]bool{"p": true}, map[string]bool{"p": false}, map[string]bool{"p": true})
	if dfa.Accepts(s.bdd, s.Dict(), withFailure) {
		t.Errorf("Accepts(G p, [p,!p,p]) = true, want false")
	}
	if !dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts(G p, []) = false, want true (vacuously)")
	}
}

func TestExploreLivenessF(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p := forms.Atom("p")
	dfa := mustExplore(t, s, forms.F(p))

	eventuallyTrue := word(map[string]bool{"p": false}, map[string]bool{"p": false}, map[string]bool{"p": true})
	if !dfa.Accepts(s.bdd, s.Dict(), eventuallyTrue) {
		t.Errorf("Accepts(F p, [!p,!p,p]) = false, want true")
	}
	neverTrue := word(map[string]bool{"p": false}, map[string]bool{"p": false})
	if dfa.Accepts(s.bdd, s.Dict(), neverTrue) {
		t.Errorf("Accepts(F p, [!p,!p]) = true, want false")
	}
	if dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts(F p, []) = true, want false")
	}
}

func TestExploreUntil(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	dfa := mustExplore(t, s, forms.U(p, q))

	if !dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{"p": true, "q": true})) {
		t.Errorf("Accepts(p U q, [p&&q]) = false, want true")
	}
	pThenQ := word(map[string]bool{"p": true, "q": false}, map[string]bool{"p": false, "q": true})
	if !dfa.Accepts(s.bdd, s.Dict(), pThenQ) {
		t.Errorf("Accepts(p U q, [p,!q][!p,q]) = false, want true")
	}
	neverQ := word(map[string]bool{"p": true, "q": false}, map[string]bool{"p": true, "q": false})
	if dfa.Accepts(s.bdd, s.Dict(), neverQ) {
		t.Errorf("Accepts(p U q, [p,!q][p,!q]) = true, want false")
	}
	if dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts(p U q, []) = true, want false")
	}
}

// TestExploreWeakNextFalseVacuity is the "X ff ≡ tt (vacuity at end)"
// boundary behavior: X(ff) accepts only traces short enough that position 0
// is the last position (length 0 or 1); any longer trace demands ff at
// position 1, which never holds.
func TestExploreWeakNextFalseVacuity(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	dfa := mustExplore(t, s, s.Forms().X(False_))

	if !dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts(X ff, []) = false, want true")
	}
	if !dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{})) {
		t.Errorf("Accepts(X ff, [_]) = false, want true")
	}
	if dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{}, map[string]bool{})) {
		t.Errorf("Accepts(X ff, [_,_]) = true, want false")
	}
}

// TestExploreStrongNextTrueRequiresExtraStep checks strong_X(tt): it holds
// only once a position after the current one actually exists, so it needs
// a trace of length at least 2 to be accepted from the start.
func TestExploreStrongNextTrueRequiresExtraStep(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	dfa := mustExplore(t, s, s.Forms().StrongX(True_))

	if dfa.Accepts(s.bdd, s.Dict(), nil) {
		t.Errorf("Accepts(strong_X tt, []) = true, want false")
	}
	if dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{})) {
		t.Errorf("Accepts(strong_X tt, [_]) = true, want false")
	}
	if !dfa.Accepts(s.bdd, s.Dict(), word(map[string]bool{}, map[string]bool{})) {
		t.Errorf("Accepts(strong_X tt, [_,_]) = false, want true")
	}
}
