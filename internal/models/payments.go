package models

import "github.com/shopspring/decimal"

// Payment is the read-side projection of a payments row. Amount is signed:
// reversals come in as negatives and must net into the per-debt total, so it
// stays decimal end to end.
type Payment struct {
	DebtID *string
	Amount decimal.Decimal
}
