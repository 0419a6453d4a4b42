package consortium

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage: 5 is 5%.
type Percent float64

var hundred = decimal.NewFromInt(100)

// ReturnOf returns gain/invested*100, or 0 when invested is not positive.
func ReturnOf(gain, invested Money) Percent {
	if !invested.IsPositive() {
		return 0
	}
	return Percent(gain.value.Mul(hundred).Div(invested.value).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
