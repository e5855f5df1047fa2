package ltlfdfa

// TerminalTable is the bidirectional map between a state ordinal and its
// canonical formula (spec.md §3, "State ordinal ↔ formula"). Formulas are
// canonicalized (via propositional equivalence, canon.go) before lookup,
// so that propositionally-equal next-formulas always intern to the same
// ordinal, and hence share a terminal (spec.md §4.D).
type TerminalTable struct {
	canon     *Canonicalizer
	ordinalOf map[*Formula]int32
	formulaOf []*Formula
}

// NewTerminalTable creates an empty interning table.
func NewTerminalTable(canon *Canonicalizer) *TerminalTable {
	return &TerminalTable{
		canon:     canon,
		ordinalOf: make(map[*Formula]int32),
	}
}

// Intern returns the stable ordinal for f's propositional-equivalence
// class, creating a fresh ordinal on first use.
func (t *TerminalTable) Intern(f *Formula) int32 {
	f = t.canon.Canonicalize(f)
	if id, ok := t.ordinalOf[f]; ok {
		return id
	}
	id := int32(len(t.formulaOf))
	t.formulaOf = append(t.formulaOf, f)
	t.ordinalOf[f] = id
	return id
}

// FormulaAt returns the canonical formula for an ordinal previously
// produced by Intern.
func (t *TerminalTable) FormulaAt(ordinal int32) *Formula {
	return t.formulaOf[ordinal]
}

// Len returns the number of distinct ordinals interned so far.
func (t *TerminalTable) Len() int { return len(t.formulaOf) }

// PackPayload encodes a (state-ordinal, may-stop-bit) pair into the single
// integer payload carried by an MTBDD terminal leaf (spec.md §3, "Terminal
// payload").
func PackPayload(ordinal int32, mayStop bool) int32 {
	b := int32(0)
	if mayStop {
		b = 1
	}
	return 2*ordinal + b
}

// UnpackPayload is the inverse of PackPayload.
func UnpackPayload(payload int32) (ordinal int32, mayStop bool) {
	return payload >> 1, payload&1 == 1
}
