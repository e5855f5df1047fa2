package ltlfdfa

import (
	"errors"
	"fmt"
)

// Input errors (§7.1): caller-fixable, reported immediately, no partial
// state is exposed to the caller.
var (
	// ErrUnsupportedOperator is returned by validateFormula (formula.go),
	// which Explore and Synthesize both run before doing anything else, when
	// a Formula's Kind falls outside the closed LTLf set of spec.md §3 or
	// carries the wrong number of children for its Kind. Every formula
	// built through Session.Forms()'s smart constructors is well-formed by
	// construction; this only fires on a Formula a caller assembled by
	// hand, since Kind and Children are exported fields.
	ErrUnsupportedOperator = errors.New("ltlfdfa: unsupported operator")

	// ErrDictionaryMismatch is returned when composing two MTDFAs whose
	// atomic-proposition lists are not compatible: some name sits at
	// different indices in the two lists.
	ErrDictionaryMismatch = errors.New("ltlfdfa: incompatible variable dictionaries")

	// ErrUnrealizablePositiveArg names the input error of a zero or
	// negative value where a strictly positive index or count is required
	// (e.g. a pattern index). No function of this package takes such an
	// argument, and none returns this error.
	ErrUnrealizablePositiveArg = errors.New("ltlfdfa: expected a positive argument")
)

// Resource-exhaustion errors (§7.2). The operation caches never overflow
// (each is a fixed-size table in which a new entry overwrites the one in
// its slot), so nothing surfaces here for them. Node-table overflow is
// fatal: growNodeTable panics, and recoverExhaustion (session.go) is the
// helper that turns that panic into ErrNodeTableExhausted; no Session
// method defers it, so the panic reaches the caller.
var ErrNodeTableExhausted = errors.New("ltlfdfa: node table exhausted")

// invariantViolation panics: these are programmer errors (§7.3) — asking a
// non-terminal for its payload or a leaf for its level or children, or
// meeting a Kind or BoolOp outside the closed set — and are never meant to
// be recovered from by a caller.
func invariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("ltlfdfa: invariant violation: "+format, args...))
}
