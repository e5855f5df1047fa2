package ltlfdfa

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the variant of a Formula node (spec.md §3). Pattern matching
// on Kind replaces the visitor-over-enum style the Design Notes call out
// (§9, "Dynamic dispatch on operator kinds") with an exhaustive switch,
// following the switch-on-type-assertion idiom used throughout
// rfielding-kripke-ctl/model_checker.go.
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindAtom
	KindNot
	KindAnd
	KindOr
	KindXor
	KindImplies
	KindEquiv
	KindX       // weak next
	KindStrongX // strong next
	KindF
	KindG
	KindU
	KindW
	KindR
	KindM
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindAtom:
		return "atom"
	case KindNot:
		return "!"
	case KindAnd:
		return "&&"
	case KindOr:
		return "||"
	case KindXor:
		return "^"
	case KindImplies:
		return "->"
	case KindEquiv:
		return "<->"
	case KindX:
		return "X"
	case KindStrongX:
		return "X!"
	case KindF:
		return "F"
	case KindG:
		return "G"
	case KindU:
		return "U"
	case KindW:
		return "W"
	case KindR:
		return "R"
	case KindM:
		return "M"
	default:
		return "?"
	}
}

// Formula is a structurally hash-consed LTLf formula (spec.md §3).
// Formulas are immutable; equality is pointer identity. Every Formula is
// produced by the smart constructors below, which flatten associative
// connectives, sort children by hash-cons id, drop duplicates and fold
// true/false, then consult the module's formula table so that two
// requests for the same normalized shape return the same pointer.
type Formula struct {
	id       uint64
	Kind     Kind
	Atom     string     // valid for KindAtom
	Children []*Formula // And/Or/Xor/Implies/Equiv (binary unless And/Or, which may be n-ary), Not/X/StrongX/F/G (one child), U/W/R/M (two children)
}

// formulaTable hash-conses formulas for one Session: a string shape key
// maps to the canonical *Formula for that shape.
type formulaTable struct {
	byShape map[string]*Formula
	nextID  uint64
}

func newFormulaTable() *formulaTable {
	// ids 0 and 1 are reserved for True_/False_ (formula.go below); starting
	// nextID at 1 means the first dynamically interned formula gets id 2, so
	// it can never collide with either constant.
	return &formulaTable{byShape: make(map[string]*Formula), nextID: 1}
}

func (t *formulaTable) intern(kind Kind, atom string, children []*Formula) *Formula {
	key := shapeKey(kind, atom, children)
	if f, ok := t.byShape[key]; ok {
		return f
	}
	t.nextID++
	f := &Formula{id: t.nextID, Kind: kind, Atom: atom, Children: children}
	t.byShape[key] = f
	return f
}

func shapeKey(kind Kind, atom string, children []*Formula) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%s:", kind, atom)
	for i, c := range children {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", c.id)
	}
	return b.String()
}

// validateFormula walks f and its descendants once (memoized against the
// hash-consed DAG's sharing) checking that every node's Kind is one of the
// closed set above with the arity that Kind requires (spec.md §7.1).
// Formula's Kind and Children fields are exported, so nothing stops a
// caller from building a Formula literal by hand instead of going through
// Session.Forms()'s smart constructors; this is the boundary check that
// catches the result before it reaches Tau, Canonicalize or any other
// internal switch that assumes the closed ADT and panics via
// invariantViolation on a Kind it cannot recognize.
func validateFormula(f *Formula) error {
	seen := make(map[*Formula]bool)
	var walk func(*Formula) error
	walk = func(f *Formula) error {
		if seen[f] {
			return nil
		}
		seen[f] = true
		n := len(f.Children)
		switch f.Kind {
		case KindTrue, KindFalse, KindAtom:
			if n != 0 {
				return fmt.Errorf("%w: %v takes no children, got %d", ErrUnsupportedOperator, f.Kind, n)
			}
		case KindNot, KindX, KindStrongX, KindF, KindG:
			if n != 1 {
				return fmt.Errorf("%w: %v takes 1 child, got %d", ErrUnsupportedOperator, f.Kind, n)
			}
		case KindXor, KindImplies, KindEquiv, KindU, KindW, KindR, KindM:
			if n != 2 {
				return fmt.Errorf("%w: %v takes 2 children, got %d", ErrUnsupportedOperator, f.Kind, n)
			}
		case KindAnd, KindOr:
			if n < 2 {
				return fmt.Errorf("%w: %v takes at least 2 children, got %d", ErrUnsupportedOperator, f.Kind, n)
			}
		default:
			return fmt.Errorf("%w: kind %d", ErrUnsupportedOperator, f.Kind)
		}
		for _, c := range f.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(f)
}

// True and False are session-independent constants; they are never
// canonicalized away, so every Session shares the same two pointers.
var (
	True_  = &Formula{id: 0, Kind: KindTrue}
	False_ = &Formula{id: 1, Kind: KindFalse}
)

// Equal reports pointer identity, the formula algebra's notion of
// equality (spec.md §3).
func (f *Formula) Equal(g *Formula) bool { return f == g }

func (f *Formula) String() string {
	switch f.Kind {
	case KindTrue:
		return "tt"
	case KindFalse:
		return "ff"
	case KindAtom:
		return f.Atom
	case KindNot:
		return "!" + paren(f.Children[0])
	case KindAnd, KindOr, KindXor:
		parts := make([]string, len(f.Children))
		for i, c := range f.Children {
			parts[i] = paren(c)
		}
		return strings.Join(parts, " "+f.Kind.String()+" ")
	case KindImplies, KindEquiv, KindU, KindW, KindR, KindM:
		return fmt.Sprintf("(%s %s %s)", f.Children[0], f.Kind, f.Children[1])
	case KindX, KindStrongX, KindF, KindG:
		return fmt.Sprintf("%s %s", f.Kind, paren(f.Children[0]))
	default:
		return "?"
	}
}

func paren(f *Formula) string {
	if f.Kind == KindAtom || f.Kind == KindTrue || f.Kind == KindFalse {
		return f.String()
	}
	return "(" + f.String() + ")"
}

// Map rebuilds f by applying fn to every immediate child, reusing f
// unchanged if no child actually changed (spec.md §4.B).
func (t *formulaTable) Map(f *Formula, fn func(*Formula) *Formula) *Formula {
	if len(f.Children) == 0 {
		return f
	}
	changed := false
	newChildren := make([]*Formula, len(f.Children))
	for i, c := range f.Children {
		nc := fn(c)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return f
	}
	switch f.Kind {
	case KindAnd:
		return t.And(newChildren...)
	case KindOr:
		return t.Or(newChildren...)
	case KindXor:
		return t.Xor(newChildren...)
	case KindNot:
		return t.Not(newChildren[0])
	case KindImplies:
		return t.Implies(newChildren[0], newChildren[1])
	case KindEquiv:
		return t.Equiv(newChildren[0], newChildren[1])
	case KindX:
		return t.X(newChildren[0])
	case KindStrongX:
		return t.StrongX(newChildren[0])
	case KindF:
		return t.F(newChildren[0])
	case KindG:
		return t.G(newChildren[0])
	case KindU:
		return t.U(newChildren[0], newChildren[1])
	case KindW:
		return t.W(newChildren[0], newChildren[1])
	case KindR:
		return t.R(newChildren[0], newChildren[1])
	case KindM:
		return t.M(newChildren[0], newChildren[1])
	default:
		return f
	}
}

// Atom returns the canonical atomic proposition formula for name.
func (t *formulaTable) Atom(name string) *Formula {
	return t.intern(KindAtom, name, nil)
}

// Not builds !f, folding double negation and constants.
func (t *formulaTable) Not(f *Formula) *Formula {
	switch f.Kind {
	case KindTrue:
		return False_
	case KindFalse:
		return True_
	case KindNot:
		return f.Children[0]
	}
	return t.intern(KindNot, "", []*Formula{f})
}

func byID(fs []*Formula) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].id < fs[j].id })
}

// And builds the conjunction of fs, flattening nested Ands, sorting by
// hash-cons id, dropping duplicates and folding true/false (spec.md
// §4.B).
func (t *formulaTable) And(fs ...*Formula) *Formula {
	flat := flattenAssoc(KindAnd, fs)
	for _, f := range flat {
		if f.Kind == KindFalse {
			return False_
		}
	}
	flat = dropValue(flat, True_)
	flat = dedupSorted(flat)
	if len(flat) == 0 {
		return True_
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return t.intern(KindAnd, "", flat)
}

// Or builds the disjunction of fs, dually to And.
func (t *formulaTable) Or(fs ...*Formula) *Formula {
	flat := flattenAssoc(KindOr, fs)
	for _, f := range flat {
		if f.Kind == KindTrue {
			return True_
		}
	}
	flat = dropValue(flat, False_)
	flat = dedupSorted(flat)
	if len(flat) == 0 {
		return False_
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return t.intern(KindOr, "", flat)
}

// Xor builds the exclusive-or of fs (left-associated after flattening).
func (t *formulaTable) Xor(fs ...*Formula) *Formula {
	flat := flattenAssoc(KindXor, fs)
	acc := False_
	for _, f := range flat {
		if f == True_ {
			acc = t.Not(acc)
			continue
		}
		if f == False_ {
			continue
		}
		if acc == False_ {
			acc = f
			continue
		}
		acc = t.intern(KindXor, "", sortedPair(acc, f))
	}
	return acc
}

// Implies builds f -> g, i.e. !f || g with standard foldings.
func (t *formulaTable) Implies(f, g *Formula) *Formula {
	if f == False_ || g == True_ {
		return True_
	}
	if f == True_ {
		return g
	}
	if g == False_ {
		return t.Not(f)
	}
	return t.intern(KindImplies, "", []*Formula{f, g})
}

// Equiv builds f <-> g.
func (t *formulaTable) Equiv(f, g *Formula) *Formula {
	if f == g {
		return True_
	}
	if f == True_ {
		return g
	}
	if g == True_ {
		return f
	}
	if f == False_ {
		return t.Not(g)
	}
	if g == False_ {
		return t.Not(f)
	}
	return t.intern(KindEquiv, "", sortedPair(f, g))
}

// X builds the weak next of f: vacuously true at the end of a trace.
func (t *formulaTable) X(f *Formula) *Formula {
	return t.intern(KindX, "", []*Formula{f})
}

// StrongX builds the strong next of f: false at the end of a trace.
func (t *formulaTable) StrongX(f *Formula) *Formula {
	return t.intern(KindStrongX, "", []*Formula{f})
}

// F builds eventually(f).
func (t *formulaTable) F(f *Formula) *Formula {
	if f == True_ || f == False_ {
		return f
	}
	return t.intern(KindF, "", []*Formula{f})
}

// G builds always(f).
func (t *formulaTable) G(f *Formula) *Formula {
	if f == True_ || f == False_ {
		return f
	}
	return t.intern(KindG, "", []*Formula{f})
}

// U builds f U g ("until").
func (t *formulaTable) U(f, g *Formula) *Formula {
	if g == True_ {
		return True_
	}
	return t.intern(KindU, "", []*Formula{f, g})
}

// W builds f W g ("weak until"): like U but also true if f holds
// forever.
func (t *formulaTable) W(f, g *Formula) *Formula {
	if f == False_ {
		return g
	}
	return t.intern(KindW, "", []*Formula{f, g})
}

// R builds f R g ("release").
func (t *formulaTable) R(f, g *Formula) *Formula {
	if f == True_ {
		return g
	}
	return t.intern(KindR, "", []*Formula{f, g})
}

// M builds f M g ("strong release").
func (t *formulaTable) M(f, g *Formula) *Formula {
	return t.intern(KindM, "", []*Formula{f, g})
}

// Eventually, Always and Unless are ergonomic aliases matching the naming
// used by omega-automata tooling in original_source/spot-2.14.1; they add
// no new semantics to the core ADT.
func (t *formulaTable) Eventually(f *Formula) *Formula { return t.F(f) }
func (t *formulaTable) Always(f *Formula) *Formula     { return t.G(f) }
func (t *formulaTable) Unless(f, g *Formula) *Formula  { return t.W(f, g) }

func flattenAssoc(kind Kind, fs []*Formula) []*Formula {
	var out []*Formula
	for _, f := range fs {
		if f.Kind == kind {
			out = append(out, f.Children...)
		} else {
			out = append(out, f)
		}
	}
	return out
}

func dropValue(fs []*Formula, v *Formula) []*Formula {
	out := make([]*Formula, 0, len(fs))
	for _, f := range fs {
		if f != v {
			out = append(out, f)
		}
	}
	return out
}

func dedupSorted(fs []*Formula) []*Formula {
	byID(fs)
	out := fs[:0:0]
	var prev *Formula
	for _, f := range fs {
		if f != prev {
			out = append(out, f)
		}
		prev = f
	}
	return out
}

func sortedPair(a, b *Formula) []*Formula {
	if a.id <= b.id {
		return []*Formula{a, b}
	}
	return []*Formula{b, a}
}
