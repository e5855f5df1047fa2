package ltlfdfa

import "testing"

func TestProductDictionaryMismatch(t *testing.T) {
	s := NewSession()
	a := &MTDFA{APs: []string{"p", "q"}, States: []NodeRef{True}}
	b := &MTDFA{APs: []string{"q", "p"}, States: []NodeRef{True}}

	if _, err := s.Product(a, b, OpAnd); err != ErrDictionaryMismatch {
		t.Errorf("Product with incompatible APs returned %v, want ErrDictionaryMismatch", err)
	}
}

func TestProductEquivalence(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	a := mustExplore(t, s, forms.G(p))
	b := mustExplore(t, s, forms.F(q))

	prod, err := s.Product(a, b, OpAnd)
	if err != nil {
		t.Fatalf("Product returned error: %v", err)
	}

	words := [][]map[string]bool{
		nil,
		word(map[string]bool{"p": true, "q": true}),
		word(map[string]bool{"p": true, "q": false}, map[string]bool{"p": true, "q": true}),
		word(map[string]bool{"p": false, "q": true}),
	}
	for _, w := range words {
		want := a.Accepts(s.bdd, s.Dict(), w) && b.Accepts(s.bdd, s.Dict(), w)
		if got := prod.Accepts(s.bdd, s.Dict(), w); got != want {
			t.Errorf("Product(G p, F q, AND).Accepts(%v) = %v, want %v", w, got, want)
		}
	}
}

func TestComplementInvolution(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p := forms.Atom("p")
	a := mustExplore(t, s, forms.F(p))
	notNotA := s.Complement(s.Complement(a))

	words := [][]map[string]bool{
		nil,
		word(map[string]bool{"p": false}),
		word(map[string]bool{"p": false}, map[string]bool{"p": true}),
	}
	for _, w := range words {
		want := a.Accepts(s.bdd, s.Dict(), w)
		if got := notNotA.Accepts(s.bdd, s.Dict(), w); got != want {
			t.Errorf("Complement(Complement(F p)).Accepts(%v) = %v, want %v", w, got, want)
		}
	}
}
