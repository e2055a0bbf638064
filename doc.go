// Package folio derives portfolio state from a transaction ledger.
//
// The ledger is the single source of truth: an ordered list of
// buy/sell/deposit/withdraw records. Nothing derived is ever persisted;
// holdings, profit and the value-over-time series are recomputed from the
// ledger and market data on every read.
//
// The package is organized around two replays of the same fold:
//
//   - CalculateHoldings folds the ledger into per-asset balances and values
//     them against a live quote snapshot.
//   - CalculateHistory folds the ledger day by day against historical price
//     and exchange-rate series to reconstruct total value over time.
//
// Both degrade numerically on missing market data (price 0, rate 1) instead
// of returning errors: a partial-data portfolio renders with some rows at
// zero rather than failing entirely.
package folio
