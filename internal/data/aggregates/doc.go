// Package aggregates implements the cart aggregate over the gorm repos in
// internal/data/repos/cart.
//
// Every write runs in one transaction from a TxRunner, locks the cart row
// first and reports failures as typed codes from internal/domain/aggregates.
package aggregates
