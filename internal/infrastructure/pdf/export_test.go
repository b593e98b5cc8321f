package pdf

import "github.com/shopspring/decimal"

func Money(d decimal.Decimal) string { return money(d) }
