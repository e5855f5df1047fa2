package ltlfdfa

// OneStepRewriter computes the two external one-step contracts of spec.md
// §6: a conservative under-approximation of satisfiability at the *last*
// position of a trace (SatRewrite), and a dual over-approximation for
// detecting losing states (UnsatRewrite). Both are pure functions of a
// formula, returning a Boolean (temporal-operator-free) formula.
//
// Callers may substitute their own via WithOneStepRewriter; the core
// depends only on this interface, preserving the black-box boundary of
// spec.md §1.
type OneStepRewriter interface {
	SatRewrite(forms *formulaTable, f *Formula) *Formula
	UnsatRewrite(forms *formulaTable, f *Formula) *Formula
}

type rewriteMode bool

const (
	rewriteSat   rewriteMode = false
	rewriteUnsat rewriteMode = true
)

func (m rewriteMode) flip() rewriteMode { return !m }

// defaultOneStepRewriter implements the rule sketch of spec.md §6,
// structurally recursing over the same operator set as
// original_source/clean_ltl.py walks an LTLf AST (there, to rename
// operator-colliding atoms; here, to collapse temporal leaves at the
// trace boundary).
type defaultOneStepRewriter struct{}

func (defaultOneStepRewriter) SatRewrite(forms *formulaTable, f *Formula) *Formula {
	return rewriteOneStep(forms, f, rewriteSat)
}

func (defaultOneStepRewriter) UnsatRewrite(forms *formulaTable, f *Formula) *Formula {
	return rewriteOneStep(forms, f, rewriteUnsat)
}

// rewriteOneStep implements both rewrites with a single mode-carrying
// recursion: the mode flips when crossing a Not, X/strong_X (to constants)
// and W/M (to Or/And) dualize with the mode, and F/G/U/R reduce to the same
// child in either mode; Boolean connectives other than Not are recursed
// with the mode unchanged, per the sketch in spec.md §6.
func rewriteOneStep(forms *formulaTable, f *Formula, mode rewriteMode) *Formula {
	switch f.Kind {
	case KindTrue, KindFalse, KindAtom:
		return f
	case KindNot:
		return forms.Not(rewriteOneStep(forms, f.Children[0], mode.flip()))
	case KindAnd:
		return forms.And(rewriteChildren(forms, f.Children, mode)...)
	case KindOr:
		return forms.Or(rewriteChildren(forms, f.Children, mode)...)
	case KindXor:
		return forms.Xor(rewriteChildren(forms, f.Children, mode)...)
	case KindImplies:
		return forms.Implies(rewriteOneStep(forms, f.Children[0], mode), rewriteOneStep(forms, f.Children[1], mode))
	case KindEquiv:
		return forms.Equiv(rewriteOneStep(forms, f.Children[0], mode), rewriteOneStep(forms, f.Children[1], mode))
	case KindX:
		if mode == rewriteSat {
			return True_
		}
		return False_
	case KindStrongX:
		if mode == rewriteSat {
			return False_
		}
		return True_
	case KindF, KindG:
		return rewriteOneStep(forms, f.Children[0], mode)
	case KindU, KindR:
		return rewriteOneStep(forms, f.Children[1], mode)
	case KindW:
		a := rewriteOneStep(forms, f.Children[0], mode)
		b := rewriteOneStep(forms, f.Children[1], mode)
		if mode == rewriteSat {
			return forms.Or(a, b)
		}
		return forms.And(a, b)
	case KindM:
		a := rewriteOneStep(forms, f.Children[0], mode)
		b := rewriteOneStep(forms, f.Children[1], mode)
		if mode == rewriteSat {
			return forms.And(a, b)
		}
		return forms.Or(a, b)
	default:
		invariantViolation("rewriteOneStep called on formula with unsupported kind %v", f.Kind)
		return False_
	}
}

func rewriteChildren(forms *formulaTable, children []*Formula, mode rewriteMode) []*Formula {
	out := make([]*Formula, len(children))
	for i, c := range children {
		out[i] = rewriteOneStep(forms, c, mode)
	}
	return out
}

// oneStepConstant applies both rewrites and reports whether their
// combination unconditionally pins f's "may stop here" behavior to a
// constant: SatRewrite valid (True_) together with UnsatRewrite
// unsatisfiable (False_) means stopping now is always accepting; the dual
// combination means it is always rejecting. Any other outcome is
// inconclusive and the caller must fall back to computing τ(f) in full.
func oneStepConstant(forms *formulaTable, canon *Canonicalizer, rw OneStepRewriter, f *Formula) (NodeRef, bool) {
	if rw == nil {
		return 0, false
	}
	sat := canon.Canonicalize(rw.SatRewrite(forms, f))
	unsat := canon.Canonicalize(rw.UnsatRewrite(forms, f))
	switch {
	case sat == True_ && unsat == False_:
		return True, true
	case sat == False_ && unsat == True_:
		return False, true
	default:
		return 0, false
	}
}
