package view

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/starford/carscout/internal/car"
)

// FormatPrice renders d in the given ISO currency, rounded to the
// currency's minor unit. Unknown codes fall back to "CODE amount".
func FormatPrice(d decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + car.FormatDecimal(d)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
