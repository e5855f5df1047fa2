package ltlfdfa

import "testing"

func TestArenaOutputWinsIfAnyChildWins(t *testing.T) {
	bdd := NewMTBDD(1)
	mask := []bool{true} // level 0 is controllable
	root := bdd.makeNode(0, False, True)
	arena := NewArena(bdd, mask)

	if !arena.AddState(0, root) {
		t.Fatalf("AddState did not determine the initial vertex")
	}
	if !arena.InitialWinner() {
		t.Errorf("InitialWinner() = false, want true (the output player can pick the winning branch)")
	}
}

func TestArenaInputLosesIfAnyChildLoses(t *testing.T) {
	bdd := NewMTBDD(1)
	mask := []bool{false} // level 0 is an input (uncontrollable) variable
	root := bdd.makeNode(0, False, True)
	arena := NewArena(bdd, mask)

	if !arena.AddState(0, root) {
		t.Fatalf("AddState did not determine the initial vertex")
	}
	if arena.InitialWinner() {
		t.Errorf("InitialWinner() = true, want false (the adversary can pick the losing branch)")
	}
}

func TestArenaMayStopLeafWinsImmediately(t *testing.T) {
	bdd := NewMTBDD(0)
	arena := NewArena(bdd, nil)
	root := bdd.Terminal(PackPayload(7, true))

	if !arena.AddState(0, root) {
		t.Fatalf("AddState did not determine the initial vertex")
	}
	if !arena.InitialWinner() {
		t.Errorf("InitialWinner() = false, want true (a may-stop leaf wins unconditionally)")
	}
}

func TestArenaAddDeterminedStateShortcut(t *testing.T) {
	bdd := NewMTBDD(0)
	arena := NewArena(bdd, nil)

	if !arena.AddDeterminedState(0, true) {
		t.Fatalf("AddDeterminedState did not determine the initial vertex")
	}
	if !arena.InitialWinner() {
		t.Errorf("InitialWinner() = false, want true")
	}
}

// TestArenaCycleStaysUndetermined builds two states whose only transitions
// point at each other with no may-stop leaf anywhere, the case backprop can
// never resolve on its own (finalizeUndetermined in solver.go is what
// eventually closes it out to a loss).
func TestArenaCycleStaysUndetermined(t *testing.T) {
	bdd := NewMTBDD(0)
	arena := NewArena(bdd, nil)
	root0 := bdd.Terminal(PackPayload(1, false))
	root1 := bdd.Terminal(PackPayload(0, false))

	arena.AddState(0, root0)
	arena.AddState(1, root1)

	if arena.InitialDetermined() {
		t.Errorf("InitialDetermined() = true for a pure cycle with no win/lose leaf, want false")
	}
}
