package ltlfdfa

// Operation tags used by the symbolic-successor combinators, kept in a
// distinct numeric range from the generic Boolean ops (mtbdd_ops.go) and
// from dfa.go's and product.go's own tags, so that two operations
// with different leaf semantics never collide in the shared apply2/apply1
// caches (spec.md §5, "Cache invalidation").
const (
	opTagTauNot int32 = 100 + iota
	opTagTauAnd
	opTagTauOr
	opTagTauXor
	opTagTauImplies
	opTagTauEquiv
)

// Translator computes the symbolic successor τ (spec.md §4.D) of LTLf
// formulas for one Session, pulling terminals from a TerminalTable and
// building nodes in a shared MTBDD.
type Translator struct {
	forms *formulaTable
	mtbdd *MTBDD
	terms *TerminalTable
	dict  *VariableDict
	log   Logger
}

// NewTranslator creates a Translator over the given tables.
func NewTranslator(forms *formulaTable, mtbdd *MTBDD, terms *TerminalTable, dict *VariableDict, log Logger) *Translator {
	return &Translator{forms: forms, mtbdd: mtbdd, terms: terms, dict: dict, log: log}
}

// leafPair is the uniform (continuation formula, may-stop bit) view of an
// MTBDD leaf: the constants True/False double as (tt,true)/(ff,false)
// respectively, per spec.md §8's boundary behaviors; any other leaf is a
// terminal unpacked through terms.
type leafPair struct {
	g *Formula
	b bool
}

func (tr *Translator) leafOf(n NodeRef) leafPair {
	switch n {
	case True:
		return leafPair{True_, true}
	case False:
		return leafPair{False_, false}
	default:
		ord, b := UnpackPayload(tr.mtbdd.Payload(n))
		return leafPair{tr.terms.FormulaAt(ord), b}
	}
}

// encodeLeaf is the inverse of leafOf: it folds (tt,true)/(ff,false) back
// into the shared constants, and otherwise interns g and builds the
// corresponding terminal.
func (tr *Translator) encodeLeaf(p leafPair) NodeRef {
	if p.g == True_ && p.b {
		return True
	}
	if p.g == False_ && !p.b {
		return False
	}
	ord := tr.terms.Intern(p.g)
	return tr.mtbdd.Terminal(PackPayload(ord, p.b))
}

// term creates (or reuses) the terminal for a canonical (g, mayStop) pair,
// the `term(g, b)` notation of spec.md §4.D.
func (tr *Translator) term(g *Formula, mayStop bool) NodeRef {
	return tr.encodeLeaf(leafPair{g, mayStop})
}

func (tr *Translator) combineAnd(m *MTBDD, l, r NodeRef) NodeRef {
	lp, rp := tr.leafOf(l), tr.leafOf(r)
	return tr.encodeLeaf(leafPair{tr.forms.And(lp.g, rp.g), lp.b && rp.b})
}

func (tr *Translator) combineOr(m *MTBDD, l, r NodeRef) NodeRef {
	lp, rp := tr.leafOf(l), tr.leafOf(r)
	return tr.encodeLeaf(leafPair{tr.forms.Or(lp.g, rp.g), lp.b || rp.b})
}

func (tr *Translator) combineXor(m *MTBDD, l, r NodeRef) NodeRef {
	lp, rp := tr.leafOf(l), tr.leafOf(r)
	return tr.encodeLeaf(leafPair{tr.forms.Xor(lp.g, rp.g), lp.b != rp.b})
}

func (tr *Translator) combineImplies(m *MTBDD, l, r NodeRef) NodeRef {
	lp, rp := tr.leafOf(l), tr.leafOf(r)
	return tr.encodeLeaf(leafPair{tr.forms.Implies(lp.g, rp.g), !lp.b || rp.b})
}

func (tr *Translator) combineEquiv(m *MTBDD, l, r NodeRef) NodeRef {
	lp, rp := tr.leafOf(l), tr.leafOf(r)
	return tr.encodeLeaf(leafPair{tr.forms.Equiv(lp.g, rp.g), lp.b == rp.b})
}

func (tr *Translator) leafNegate(m *MTBDD, n NodeRef) NodeRef {
	p := tr.leafOf(n)
	return tr.encodeLeaf(leafPair{tr.forms.Not(p.g), !p.b})
}

// Tau computes the symbolic successor of f, per the recursive definition
// of spec.md §4.D.
func (tr *Translator) Tau(f *Formula) NodeRef {
	switch f.Kind {
	case KindTrue:
		return True
	case KindFalse:
		return False
	case KindAtom:
		idx := tr.dict.Declare(f.Atom)
		return tr.mtbdd.Ithvar(idx)
	case KindNot:
		return tr.mtbdd.Apply1(tr.Tau(f.Children[0]), opTagTauNot, tr.leafNegate)
	case KindAnd:
		return tr.foldNary(f.Children, opTagTauAnd, tr.combineAnd)
	case KindOr:
		return tr.foldNary(f.Children, opTagTauOr, tr.combineOr)
	case KindXor:
		l, r := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		return tr.mtbdd.Apply2(l, r, opTagTauXor, tr.combineXor, nil)
	case KindImplies:
		l, r := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		return tr.mtbdd.Apply2(l, r, opTagTauImplies, tr.combineImplies, nil)
	case KindEquiv:
		l, r := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		return tr.mtbdd.Apply2(l, r, opTagTauEquiv, tr.combineEquiv, nil)
	case KindX:
		return tr.term(f.Children[0], true)
	case KindStrongX:
		return tr.term(f.Children[0], false)
	case KindG:
		child := tr.Tau(f.Children[0])
		return tr.mtbdd.Apply2(child, tr.term(f, true), opTagTauAnd, tr.combineAnd, nil)
	case KindF:
		child := tr.Tau(f.Children[0])
		return tr.mtbdd.Apply2(child, tr.term(f, false), opTagTauOr, tr.combineOr, nil)
	case KindU:
		f1, f2 := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		inner := tr.mtbdd.Apply2(f1, tr.term(f, false), opTagTauAnd, tr.combineAnd, nil)
		return tr.mtbdd.Apply2(f2, inner, opTagTauOr, tr.combineOr, nil)
	case KindW:
		f1, f2 := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		inner := tr.mtbdd.Apply2(f1, tr.term(f, true), opTagTauAnd, tr.combineAnd, nil)
		return tr.mtbdd.Apply2(f2, inner, opTagTauOr, tr.combineOr, nil)
	case KindR:
		f1, f2 := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		inner := tr.mtbdd.Apply2(f1, tr.term(f, true), opTagTauOr, tr.combineOr, nil)
		return tr.mtbdd.Apply2(f2, inner, opTagTauAnd, tr.combineAnd, nil)
	case KindM:
		f1, f2 := tr.Tau(f.Children[0]), tr.Tau(f.Children[1])
		inner := tr.mtbdd.Apply2(f1, tr.term(f, false), opTagTauOr, tr.combineOr, nil)
		return tr.mtbdd.Apply2(f2, inner, opTagTauAnd, tr.combineAnd, nil)
	default:
		invariantViolation("Tau called on formula with unsupported kind %v", f.Kind)
		return False
	}
}

func (tr *Translator) foldNary(children []*Formula, opTag int32, combine LeafOp2) NodeRef {
	acc := tr.Tau(children[0])
	for _, c := range children[1:] {
		acc = tr.mtbdd.Apply2(acc, tr.Tau(c), opTag, combine, nil)
	}
	return acc
}
