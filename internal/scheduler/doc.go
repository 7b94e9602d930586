// Package scheduler is the study-session engine built on top of a memory model.
//
// It decides which items to present and in what order: due reviews first,
// earliest-overdue first, then a shuffled batch of new items capped by the
// daily quota. It applies grades through the memory model, keeps the per-day
// bookkeeping of the review store and walks a built session with a cursor that
// re-queues failed cards.
//
// The engine is generic over the catalog's identifier type, item type and
// filter type, so one implementation serves every study domain. Every operation
// is a pure function of its arguments: no I/O, no logging, no hidden clock.
package scheduler
