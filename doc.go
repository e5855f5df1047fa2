// Package ltlfdfa translates LTLf (linear temporal logic over finite
// traces) formulas into symbolic DFAs represented as multi-terminal
// binary decision diagrams, and solves the resulting reactive-synthesis
// games on the fly.
//
// A Session owns every per-translation resource (the formula table, the
// MTBDD engine, the terminal-intern table, the variable dictionary) and
// is not safe for concurrent use; run independent translations from
// independent Sessions. The core pipeline is: build formulas via
// Session.Forms(), explore the reachable automaton with Session.Explore,
// compose or minimize it with Session.Product/Complement/Minimize, and
// either solve it after the fact with Session.Solve or synthesize a
// strategy directly from a formula with Session.Synthesize.
package ltlfdfa
