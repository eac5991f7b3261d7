// Package folio is a personal-investment-portfolio analytics engine.
//
// Given a ledger of buy/sell transactions and a security registry mapping
// each instrument to an asset class and a macro asset class, it
// reconstructs the daily wealth history, computes profit-and-loss,
// derives period returns at several frequencies and aggregation levels,
// computes drawdowns, and decomposes portfolio risk into per-entity
// relative contributions.
//
// The engine is a pure, synchronous computation over an in-memory dataset:
// the ledger and the registry are immutable once loaded, and every figure
// is recomputed from scratch per call. Price histories come from an
// injected [PriceProvider]; an optional [Memo] cache trades staleness for
// latency but is never required for correctness.
package folio
