package consortium

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Share is a client's fraction of the active capital, in [0, 1].
type Share struct {
	value decimal.Decimal
}

// S is the Share factory.
func S[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Share {
	return Share{value: newDecimal(value)}
}

// ShareOf returns part/whole, or a zero share when whole is not positive.
func ShareOf(part, whole Money) Share {
	if !whole.IsPositive() {
		return Share{}
	}
	return Share{value: part.value.Div(whole.value)}
}

func (s Share) Add(t Share) Share        { return Share{value: s.value.Add(t.value)} }
func (s Share) Equal(t Share) bool       { return s.value.Equal(t.value) }
func (s Share) IsZero() bool             { return s.value.IsZero() }
func (s Share) Decimal() decimal.Decimal { return s.value }
func (s Share) Float64() float64         { return s.value.InexactFloat64() }
func (s Share) String() string           { return s.value.String() }

// Percent returns the share as a percentage (0.25 is 25%).
func (s Share) Percent() Percent { return Percent(s.value.Shift(2).InexactFloat64()) }

func (s Share) MarshalJSON() ([]byte, error) { return s.value.MarshalJSON() }
func (s *Share) UnmarshalJSON(b []byte) error {
	return s.value.UnmarshalJSON(b)
}
