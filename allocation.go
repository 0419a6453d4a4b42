package consortium

import (
	"github.com/etnz/consortium/date"
)

// Allocation is the part of one profit event that goes to one client.
type Allocation struct {
	Date   date.Date // reference date
	Client Client
	Active bool  // the client had joined on Date
	Share  Share // fraction of the active capital, zero when inactive
	Amount Money // Share * event amount
}

// ActiveCapital returns the sum of the capital invested by the clients active on day on.
func ActiveCapital(clients []Client, on date.Date) Money {
	var sum Money
	for _, c := range clients {
		if c.IsActive(on) {
			sum = sum.Add(c.Invested)
		}
	}
	return sum
}

// Allocate distributes total among the clients active on day on, in proportion
// of their invested capital.
//
// Results are in the same order as clients. When no capital is active (no
// active client, or only zero-invested ones) every share and amount is zero.
// A negative total (a loss) is distributed with the same rule.
//
// All amounts must be in the same currency, see Validate.
func Allocate(clients []Client, on date.Date, total Money) []Allocation {
	return allocate(clients, on, total, ActiveCapital(clients, on))
}

// Shares returns the capital weighting of clients on day on, without any
// event: it is Allocate of a total of 1, so that each Amount equals its Share.
func Shares(clients []Client, on date.Date) []Allocation {
	return Allocate(clients, on, M(1, ""))
}

func allocate(clients []Client, on date.Date, total Money, activeSum Money) []Allocation {
	allocations := make([]Allocation, len(clients))
	for i, c := range clients {
		a := Allocation{
			Date:   on,
			Client: c,
			Active: c.IsActive(on),
		}
		if a.Active {
			a.Share = ShareOf(c.Invested, activeSum)
		}
		a.Amount = total.Mul(a.Share)
		allocations[i] = a
	}
	return allocations
}

// MarshalJSON writes the allocation as a flat row.
func (a Allocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", a.Date)
	w.Append("id", a.Client.ID)
	w.Append("name", a.Client.Name)
	w.Append("invested", a.Client.Invested)
	w.Append("joinDate", a.Client.JoinDate)
	w.Append("active", a.Active)
	w.Append("share", a.Share)
	w.Append("amount", a.Amount)
	return w.MarshalJSON()
}
