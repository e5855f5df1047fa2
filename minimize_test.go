package ltlfdfa

import "testing"

func TestMinimizePreservesLanguage(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	dfa := mustExplore(t, s, forms.U(p, q))
	min := s.Minimize(dfa)

	if len(min.States) > len(dfa.States) {
		t.Errorf("Minimize produced %d states, want <= %d", len(min.States), len(dfa.States))
	}

	words := [][]map[string]bool{
		nil,
		word(map[string]bool{"p": true, "q": true}),
		word(map[string]bool{"p": true, "q": false}, map[string]bool{"p": false, "q": true}),
		word(map[string]bool{"p": true, "q": false}, map[string]bool{"p": true, "q": false}),
	}
	for _, w := range words {
		want := dfa.Accepts(s.bdd, s.Dict(), w)
		if got := min.Accepts(s.bdd, s.Dict(), w); got != want {
			t.Errorf("Minimize(p U q).Accepts(%v) = %v, want %v", w, got, want)
		}
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p, q := forms.Atom("p"), forms.Atom("q")
	dfa := mustExplore(t, s, forms.U(p, q))
	once := s.Minimize(dfa)
	twice := s.Minimize(once)

	if len(twice.States) != len(once.States) {
		t.Errorf("Minimize(Minimize(x)) has %d states, want %d (idempotent)", len(twice.States), len(once.States))
	}
}

func TestMinimizeKeepsMinimalSafetyG(t *testing.T) {
	s := NewSession()
	forms := s.Forms()
	p := forms.Atom("p")
	dfa := mustExplore(t, s, forms.G(p))
	min := s.Minimize(dfa)

	if len(min.States) != len(dfa.States) {
		t.Errorf("Minimize(G p) has %d states, want %d (already minimal)", len(min.States), len(dfa.States))
	}
}
