// Package domain defines the core value types of the study scheduler: grades,
// learning stages, per-item memory state, review records and the per-user review
// store aggregate.
//
// All types here are plain values. The review store in particular is never
// mutated in place; every "With" helper returns a new snapshot so callers can
// diff, apply optimistically and roll back.
package domain
