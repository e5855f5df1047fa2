package ltlfdfa

// Canonicalizer implements the propositional-equivalence canonicalization
// described in spec.md §4.C. Given a formula whose top operator is
// Boolean, it returns a representative picked from its propositional
// equivalence class, so that propositionally-equal next-formulas end up
// sharing the same terminal (terminal.go).
//
// Open Question (spec.md §9): the propositional fingerprint assigns a
// fresh anonymous BDD variable to every distinct non-Boolean subformula.
// Two formulas that are structurally identical up to the naming of their
// non-Boolean subformulas therefore fingerprint differently. This is
// sound (distinct non-Boolean subformulas really can have distinct
// next-step behavior) but incomplete (it does not merge classes it could
// merge in principle). This is intentional and is not "fixed" here, per
// spec.md's explicit guidance to analyze state-space impact before
// touching it.
type Canonicalizer struct {
	forms *formulaTable
	bdd   *MTBDD // a dedicated, Boolean-only MTBDD used purely as a fingerprinting device
	varOf map[*Formula]int32
	next  int32
	table map[NodeRef]*Formula // first formula to reach a given fingerprint wins
}

// NewCanonicalizer creates a canonicalizer sharing a Session's formula
// table.
func NewCanonicalizer(forms *formulaTable) *Canonicalizer {
	return &Canonicalizer{
		forms: forms,
		bdd:   NewMTBDD(0),
		varOf: make(map[*Formula]int32),
		table: make(map[NodeRef]*Formula),
	}
}

func isBooleanTop(k Kind) bool {
	switch k {
	case KindAnd, KindOr, KindNot, KindXor, KindImplies, KindEquiv:
		return true
	}
	return false
}

// Canonicalize returns the canonical representative of f's propositional
// equivalence class, or f unchanged if its top operator is not Boolean.
func (c *Canonicalizer) Canonicalize(f *Formula) *Formula {
	if !isBooleanTop(f.Kind) {
		return f
	}
	f = c.absorb(f)
	if !isBooleanTop(f.Kind) {
		return f
	}
	fp := c.fingerprint(f)
	switch fp {
	case False:
		return False_
	case True:
		return True_
	}
	if canon, ok := c.table[fp]; ok {
		return canon
	}
	c.table[fp] = f
	return f
}

// absorb applies the cheap absorption rules of spec.md §4.C step 1 until
// no more children can be dropped.
func (c *Canonicalizer) absorb(f *Formula) *Formula {
	for {
		var next *Formula
		switch f.Kind {
		case KindAnd:
			next = c.absorbAnd(f)
		case KindOr:
			next = c.absorbOr(f)
		default:
			return f
		}
		if next == f {
			return f
		}
		f = next
	}
}

// absorbAnd drops a child β when a sibling witnesses (α M β), (α R β), or
// (G α) ≡ child with α == β — the rules "(α M β) ∧ β ≡ (α M β)",
// "(α R β) ∧ β ≡ (α R β)", "G α ∧ α ≡ G α".
func (c *Canonicalizer) absorbAnd(f *Formula) *Formula {
	present := make(map[*Formula]bool, len(f.Children))
	for _, ch := range f.Children {
		present[ch] = true
	}
	remove := make(map[*Formula]bool)
	for _, ch := range f.Children {
		switch ch.Kind {
		case KindM, KindR:
			if beta := ch.Children[1]; present[beta] {
				remove[beta] = true
			}
		case KindG:
			if alpha := ch.Children[0]; present[alpha] {
				remove[alpha] = true
			}
		}
	}
	if len(remove) == 0 {
		return f
	}
	kept := make([]*Formula, 0, len(f.Children))
	for _, ch := range f.Children {
		if !remove[ch] {
			kept = append(kept, ch)
		}
	}
	return c.forms.And(kept...)
}

// absorbOr is the dual of absorbAnd: "(α U β) ∨ β ≡ (α U β)",
// "(α W β) ∨ β ≡ (α W β)", "F α ∨ α ≡ F α".
func (c *Canonicalizer) absorbOr(f *Formula) *Formula {
	present := make(map[*Formula]bool, len(f.Children))
	for _, ch := range f.Children {
		present[ch] = true
	}
	remove := make(map[*Formula]bool)
	for _, ch := range f.Children {
		switch ch.Kind {
		case KindU, KindW:
			if beta := ch.Children[1]; present[beta] {
				remove[beta] = true
			}
		case KindF:
			if alpha := ch.Children[0]; present[alpha] {
				remove[alpha] = true
			}
		}
	}
	if len(remove) == 0 {
		return f
	}
	kept := make([]*Formula, 0, len(f.Children))
	for _, ch := range f.Children {
		if !remove[ch] {
			kept = append(kept, ch)
		}
	}
	return c.forms.Or(kept...)
}

// fingerprint builds the propositional encoding of f in the internal
// Boolean BDD, lazily assigning a fresh anonymous variable to every
// distinct non-Boolean subformula it encounters (spec.md §4.C step 2).
func (c *Canonicalizer) fingerprint(f *Formula) NodeRef {
	switch f.Kind {
	case KindTrue:
		return True
	case KindFalse:
		return False
	case KindNot:
		return c.bdd.Not(c.fingerprint(f.Children[0]))
	case KindAnd:
		res := True
		for _, ch := range f.Children {
			res = c.bdd.And(res, c.fingerprint(ch))
		}
		return res
	case KindOr:
		res := False
		for _, ch := range f.Children {
			res = c.bdd.Or(res, c.fingerprint(ch))
		}
		return res
	case KindXor:
		return c.bdd.Xor(c.fingerprint(f.Children[0]), c.fingerprint(f.Children[1]))
	case KindImplies:
		return c.bdd.Implies(c.fingerprint(f.Children[0]), c.fingerprint(f.Children[1]))
	case KindEquiv:
		return c.bdd.Equiv(c.fingerprint(f.Children[0]), c.fingerprint(f.Children[1]))
	default:
		return c.anonVar(f)
	}
}

func (c *Canonicalizer) anonVar(f *Formula) NodeRef {
	v, ok := c.varOf[f]
	if !ok {
		v = c.next
		c.next++
		c.varOf[f] = v
	}
	return c.bdd.Ithvar(v)
}
