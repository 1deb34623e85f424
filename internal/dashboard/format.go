package dashboard

import (
	"math"
	"strconv"
)

// Formatter renders quantities and costs. Quantity and cost precision are
// configured independently; negative costs carry a leading minus before the
// currency symbol (e.g. -$12.50), never a trailing sign.
type Formatter struct {
	Currency      string
	ValueDecimals int
	CostDecimals  int
}

// DefaultFormatter matches the config defaults: dollars, two decimals.
func DefaultFormatter() Formatter {
	return Formatter{Currency: "$", ValueDecimals: 2, CostDecimals: 2}
}

func (f Formatter) FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', f.ValueDecimals, 64)
}

func (f Formatter) FormatCost(v float64) string {
	s := f.Currency + strconv.FormatFloat(math.Abs(v), 'f', f.CostDecimals, 64)
	if v < 0 {
		return "-" + s
	}
	return s
}
