package ltlfdfa

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Logger is the structured logger interface used throughout this module,
// aliased from logr so that callers can plug in any logr-compatible
// backend (zap, klog, ...) exactly as
// operator-framework-operator-lifecycle-manager does at its controller
// boundaries.
type Logger = logr.Logger

// Session owns every per-translation shared resource: the formula intern
// table, the variable dictionary, the MTBDD node table, the terminal
// intern table and the canonicalizer's fingerprint cache (spec.md §5,
// "Shared resources"). A Session is not safe for concurrent use; running
// several translations in parallel means creating one Session per
// goroutine (spec.md §5, preserved verbatim).
type Session struct {
	forms *formulaTable
	bdd   *MTBDD
	canon *Canonicalizer
	terms *TerminalTable
	dict  *VariableDict
	tr    *Translator
	rw    OneStepRewriter

	log Logger
	cfg sessionConfig
}

type sessionConfig struct {
	mtbddOpts      []MTBDDOption
	exploration    explorationMode
	oneStepRewrite bool
}

// SessionOption configures a Session at construction time, following the
// functional-options pattern of dalzilio-rudd/config.go.
type SessionOption func(*Session)

// WithLogger attaches a structured logger; debug-level (V(1)) records
// session creation and the outcome of Explore, Minimize, Product, Solve and
// Synthesize (state counts, realizability). The default is logr.Discard(), so logging calls are always safe.
func WithLogger(log Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithMTBDDOptions forwards options to the underlying MTBDD engine
// (WithNodeTableSize, WithCacheSize, ...).
func WithMTBDDOptions(opts ...MTBDDOption) SessionOption {
	return func(s *Session) { s.cfg.mtbddOpts = append(s.cfg.mtbddOpts, opts...) }
}

// WithExploration sets the state-exploration strategy used by Explore and
// Synthesize (spec.md §4.E/§4.J): ExploreBFS (default), ExploreDFS, or
// ExploreDFSStrict.
func WithExploration(mode explorationMode) SessionOption {
	return func(s *Session) { s.cfg.exploration = mode }
}

// WithOneStepRewriter installs a custom OneStepRewriter, overriding the
// default sat/unsat rewrite rules of rewrite.go.
func WithOneStepRewriter(rw OneStepRewriter) SessionOption {
	return func(s *Session) { s.rw = rw; s.cfg.oneStepRewrite = true }
}

// WithoutOneStepRewrites disables one-step rewriting entirely; tau is then
// applied without any pre/post simplification of the resulting MTBDD.
func WithoutOneStepRewrites() SessionOption {
	return func(s *Session) { s.rw = nil; s.cfg.oneStepRewrite = false }
}

// WithVariableDict pre-populates the session's atomic-proposition
// dictionary, e.g. from an input/output partition via
// NewVariableDictFromPartition.
func WithVariableDict(dict *VariableDict) SessionOption {
	return func(s *Session) { s.dict = dict }
}

// NewSession creates a Session with its own formula table, MTBDD engine,
// canonicalizer, terminal table and translator wired together.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		log: logr.Discard(),
		rw:  defaultOneStepRewriter{},
		cfg: sessionConfig{oneStepRewrite: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.forms = newFormulaTable()
	s.bdd = NewMTBDD(s.dictSize(), s.cfg.mtbddOpts...)
	s.canon = NewCanonicalizer(s.forms)
	s.terms = NewTerminalTable(s.canon)
	if s.dict == nil {
		s.dict = NewVariableDict()
	}
	s.tr = NewTranslator(s.forms, s.bdd, s.terms, s.dict, s.log)
	s.log.V(1).Info("session created", "variables", s.dict.Len())
	return s
}

func (s *Session) dictSize() int {
	if s.dict == nil {
		return 0
	}
	return s.dict.Len()
}

// Forms exposes the session's formula table for building Formula values
// (Atom, And, Or, Not, ...).
func (s *Session) Forms() *formulaTable { return s.forms }

// Dict exposes the session's atomic-proposition dictionary.
func (s *Session) Dict() *VariableDict { return s.dict }

// Translator exposes the session's symbolic-successor translator.
func (s *Session) Translator() *Translator { return s.tr }

// Rewriter exposes the session's one-step rewrite contract, or nil if
// disabled.
func (s *Session) Rewriter() OneStepRewriter { return s.rw }

// oneStepShortcut applies the session's one-step sat/unsat rewriter to f,
// if enabled, reporting whether f's "may stop here" behavior is pinned to
// a constant (spec.md §6, used by dfa.go and onthefly.go to skip
// computing τ(f) in full).
func (s *Session) oneStepShortcut(f *Formula) (NodeRef, bool) {
	if !s.cfg.oneStepRewrite {
		return 0, false
	}
	return oneStepConstant(s.forms, s.canon, s.rw, f)
}

// recoverExhaustion, deferred with a pointer to a named error result,
// converts the kernel's node-table-exhaustion panic into
// ErrNodeTableExhausted (spec.md §7.2); any other panic propagates
// unchanged since it is by construction a programmer error (§7.3,
// invariantViolation). No method of this package defers it.
func recoverExhaustion(err *error) {
	if r := recover(); r != nil {
		if _, ok := r.(errNodeTableExhaustedPanic); ok {
			*err = errors.Wrap(ErrNodeTableExhausted, "growing MTBDD node table")
			return
		}
		panic(r)
	}
}
