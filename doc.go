// Package consortium computes how the profits and losses of an investment
// pool are shared among its investors.
//
// Each client contributes a fixed capital at a join date. Each profit event
// is an amount realised by the whole pool on a given day. The core is made of
// two pure functions:
//   - Allocate: on a given day, the clients that already joined share the
//     event amount in proportion of their invested capital.
//   - BuildTimeseries: walking all the events in chronological order, the
//     running cumulative gain of every client, and its return relative to the
//     invested capital.
//
// Both work on an in-memory snapshot (a Pool) and are recomputed in full at
// each call: there is no incremental state to keep in sync with the data.
// Amounts are exact decimals (Money), never floats.
//
// Persistence, import/export, reports, and the HTTP API live in the sub
// packages and in the `csm` command-line tool.
package consortium
