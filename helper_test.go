package consortium

import (
	"github.com/etnz/consortium/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// eur is a helper for test to create exact euro money from a decimal string
func eur(s string) Money { return M(decimal.RequireFromString(s), "EUR") }

// share is a helper for test to create an exact share from a decimal string
func share(s string) Share { return S(decimal.RequireFromString(s)) }

// day is a helper for test to parse dates from const
func day(s string) date.Date { return date.MustParse(s) }

// cmpOpts compares engine values by value, not by representation.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Share) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Percent) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// scenarioA is two equal clients, the second one joining between the two profit events.
func scenarioA() ([]Client, []ProfitEvent) {
	clients := []Client{
		NewClient(1, "A", EUR(1000), day("2024-01-01")),
		NewClient(2, "B", EUR(1000), day("2024-02-01")),
	}
	events := []ProfitEvent{
		NewProfitEvent(day("2024-01-15"), EUR(200)),
		NewProfitEvent(day("2024-02-15"), EUR(200)),
	}
	return clients, events
}
