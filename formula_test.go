package ltlfdfa

import (
	"errors"
	"testing"
)

func TestFormulaHashConsing(t *testing.T) {
	forms := NewSession().Forms()
	p := forms.Atom("p")
	q := forms.Atom("q")

	if forms.Atom("p") != p {
		t.Errorf("Atom(%q) not idempotent: got distinct pointers", "p")
	}
	if forms.And(p, q) != forms.And(q, p) {
		t.Errorf("And(p,q) != And(q,p): want identical pointer via sorted hash-consing")
	}
	if forms.Or(p, q) != forms.Or(q, p) {
		t.Errorf("Or(p,q) != Or(q,p): want identical pointer via sorted hash-consing")
	}
	if forms.And(p, p) != p {
		t.Errorf("And(p,p) = %v, want p (duplicate dropped)", forms.And(p, p))
	}
}

func TestFormulaConstantFolding(t *testing.T) {
	forms := NewSession().Forms()
	p := forms.Atom("p")

	if got := forms.Not(forms.Not(p)); got != p {
		t.Errorf("Not(Not(p)) = %v, want p", got)
	}
	if got := forms.And(p, True_); got != p {
		t.Errorf("And(p, tt) = %v, want p", got)
	}
	if got := forms.And(p, False_); got != False_ {
		t.Errorf("And(p, ff) = %v, want ff", got)
	}
	if got := forms.Or(p, False_); got != p {
		t.Errorf("Or(p, ff) = %v, want p", got)
	}
	if got := forms.Or(p, True_); got != True_ {
		t.Errorf("Or(p, tt) = %v, want tt", got)
	}
	if got := forms.Not(True_); got != False_ {
		t.Errorf("Not(tt) = %v, want ff", got)
	}
	if got := forms.Not(False_); got != True_ {
		t.Errorf("Not(ff) = %v, want tt", got)
	}
	if got := forms.F(True_); got != True_ {
		t.Errorf("F(tt) = %v, want tt", got)
	}
	if got := forms.G(False_); got != False_ {
		t.Errorf("G(ff) = %v, want ff", got)
	}
	if got := forms.U(p, True_); got != True_ {
		t.Errorf("U(p, tt) = %v, want tt", got)
	}
	if got := forms.W(False_, p); got != p {
		t.Errorf("W(ff, p) = %v, want p", got)
	}
	if got := forms.R(True_, p); got != p {
		t.Errorf("R(tt, p) = %v, want p", got)
	}
}

// TestFormulaIDsNeverCollideWithConstants guards newFormulaTable's nextID
// seed: True_/False_ have the reserved ids 0 and 1, so the first formula
// a session interns must not also get one of those ids.
func TestFormulaIDsNeverCollideWithConstants(t *testing.T) {
	p := NewSession().Forms().Atom("p")
	if p.id == True_.id || p.id == False_.id {
		t.Errorf("first interned formula got id %d, collides with a shared constant (tt=%d, ff=%d)", p.id, True_.id, False_.id)
	}
}

// TestFormulaNextNoCollision is the scenario the id-collision bug actually
// broke: X(p), where p is the session's first interned formula, must stay
// distinct from X(ff), even though ff is a shared constant with a low
// reserved id of its own.
func TestFormulaNextNoCollision(t *testing.T) {
	forms := NewSession().Forms()
	p := forms.Atom("p")

	xp := forms.X(p)
	xFalse := forms.X(False_)
	if xp == xFalse {
		t.Fatalf("X(p) and X(ff) collapsed to the same pointer")
	}
	if xp.Children[0] != p {
		t.Errorf("X(p).Children[0] = %v, want p", xp.Children[0])
	}
	if xFalse.Children[0] != False_ {
		t.Errorf("X(ff).Children[0] = %v, want ff", xFalse.Children[0])
	}
}

func TestValidateFormulaRejectsUnknownKind(t *testing.T) {
	bad := &Formula{Kind: Kind(99)}
	if err := validateFormula(bad); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("validateFormula(kind 99) = %v, want ErrUnsupportedOperator", err)
	}
}

func TestValidateFormulaRejectsWrongArity(t *testing.T) {
	bad := &Formula{Kind: KindNot, Children: []*Formula{True_, False_}}
	if err := validateFormula(bad); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("validateFormula(Not with 2 children) = %v, want ErrUnsupportedOperator", err)
	}
}

func TestValidateFormulaAcceptsWellFormed(t *testing.T) {
	forms := NewSession().Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	f := forms.G(forms.Implies(p, forms.X(q)))
	if err := validateFormula(f); err != nil {
		t.Errorf("validateFormula on a smart-constructor formula = %v, want nil", err)
	}
}

func TestExploreRejectsMalformedFormula(t *testing.T) {
	s := NewSession()
	bad := &Formula{Kind: Kind(200)}
	if _, err := s.Explore(bad); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("Explore(malformed) = %v, want ErrUnsupportedOperator", err)
	}
}

func TestSynthesizeRejectsMalformedFormula(t *testing.T) {
	s := NewSession()
	bad := &Formula{Kind: Kind(200)}
	if _, _, err := s.Synthesize(bad, nil); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("Synthesize(malformed) = %v, want ErrUnsupportedOperator", err)
	}
}

func TestFormulaMapReusesUnchanged(t *testing.T) {
	forms := NewSession().Forms()
	p := forms.Atom("p")
	q := forms.Atom("q")
	f := forms.And(p, q)

	same := forms.Map(f, func(c *Formula) *Formula { return c })
	if same != f {
		t.Errorf("Map with identity fn returned a new pointer, want the same Formula")
	}

	renamed := forms.Map(f, func(c *Formula) *Formula {
		if c == p {
			return forms.Atom("r")
		}
		return c
	})
	want := forms.And(forms.Atom("r"), q)
	if renamed != want {
		t.Errorf("Map rewrite = %v, want %v", renamed, want)
	}
}
