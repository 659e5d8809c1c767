// Package aggregates defines the cart aggregate contract: its inputs, results
// and the typed error codes every write reports.
//
// Nothing here touches persistence or transport; implementations live in
// internal/data/aggregates and own their transaction boundaries.
package aggregates
