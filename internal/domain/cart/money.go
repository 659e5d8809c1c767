package cart

import "github.com/shopspring/decimal"

// MoneyScale is the number of minor-unit digits kept for prices and totals.
const MoneyScale = 2

// RoundMoney rounds half away from zero to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Subtotal is price * quantity at money scale.
func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return RoundMoney(price.Mul(decimal.NewFromInt(int64(quantity))))
}

// Amount renders as a bare JSON number with exactly MoneyScale decimals (20.00).
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: RoundMoney(d)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(MoneyScale)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}
