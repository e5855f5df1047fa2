package ltlfdfa

import "testing"

func TestTauAtomBranchesOnDeclaredVariable(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	p := s.Forms().Atom("p")

	root := s.Translator().Tau(p)
	idx, ok := s.Dict().Index("p")
	if !ok {
		t.Fatalf("Tau(p) never declared p in the variable dictionary")
	}
	if root != s.bdd.Ithvar(idx) {
		t.Errorf("Tau(p) = %v, want Ithvar(%d)", root, idx)
	}
}

// TestTauAndNextRegression guards the Apply2 entry condition (both operands
// must be leaves before the leaf combiner runs): tau of "p && X q" pairs an
// internal node (p's Ithvar) against a bare terminal (X q's leaf), exactly
// the mixed case that panics if Apply2 only requires one side to be a leaf.
func TestTauAndNextRegression(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	forms := s.Forms()
	tr := s.Translator()
	p := forms.Atom("p")
	q := forms.Atom("q")
	f := forms.And(p, forms.X(q))

	root := tr.Tau(f)
	if s.bdd.IsConstant(root) || s.bdd.IsTerminal(root) {
		t.Fatalf("Tau(p && X q) = %v, want an internal decision node on p", root)
	}
	idxP, ok := s.Dict().Index("p")
	if !ok {
		t.Fatalf("atom p never declared")
	}
	if got := s.bdd.Level(root); got != idxP {
		t.Errorf("Tau(p && X q) branches on level %d, want p's level %d", got, idxP)
	}
	if got := s.bdd.Low(root); got != False {
		t.Errorf("Tau(p && X q) low branch = %v, want ff", got)
	}
	wantHigh := tr.term(q, true)
	if got := s.bdd.High(root); got != wantHigh {
		t.Errorf("Tau(p && X q) high branch = %v, want term(q, true) = %v", got, wantHigh)
	}
}

func TestTermFoldsExactlyAtTheConstantPair(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	tr := s.Translator()

	if got := tr.term(True_, true); got != True {
		t.Errorf("term(tt, may_stop=1) = %v, want tt", got)
	}
	if got := tr.term(False_, false); got != False {
		t.Errorf("term(ff, may_stop=0) = %v, want ff", got)
	}
	if got := tr.term(True_, false); got == True {
		t.Errorf("term(tt, may_stop=0) folded to tt, want a genuine terminal")
	}
	if got := tr.term(False_, true); got == False {
		t.Errorf("term(ff, may_stop=1) folded to ff, want a genuine terminal")
	}
}

// TestTauBoundaryWeakNextOfTrue is the "X tt ≡ tt" boundary behavior: X
// always builds term(f, may_stop=1), and term(tt, 1) is exactly the
// constant-folding pair, so the weak next of tt collapses to tt directly.
func TestTauBoundaryWeakNextOfTrue(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	if got := s.Translator().Tau(s.Forms().X(True_)); got != True {
		t.Errorf("Tau(X tt) = %v, want tt", got)
	}
}

// TestTauBoundaryStrongNextOfFalse is the "strong_X ff ≡ ff" boundary
// behavior: strong_X always builds term(f, may_stop=0), and term(ff, 0) is
// exactly the constant-folding pair.
func TestTauBoundaryStrongNextOfFalse(t *testing.T) {
	s := NewSession(WithoutOneStepRewrites())
	if got := s.Translator().Tau(s.Forms().StrongX(False_)); got != False {
		t.Errorf("Tau(strong_X ff) = %v, want ff", got)
	}
}
