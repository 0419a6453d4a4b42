package consortium

import "github.com/etnz/consortium/date"

// Summary is a pool-level overview. AvgReturn is the return of the pool as
// a whole, it is not an average of the clients' returns.
type Summary struct {
	TotalClients  int       `json:"totalClients"`
	TotalInvested Money     `json:"totalInvested"`
	TotalProfit   Money     `json:"totalProfit"` // plain sum of all events, allocated or not
	TotalValue    Money     `json:"totalValue"`  // TotalInvested + TotalProfit
	AvgReturn     Percent   `json:"avgReturn"`   // TotalProfit / TotalInvested * 100
	Events        int       `json:"events"`
	LastEvent     date.Date `json:"lastEvent,omitzero"` // zero if there is no event
}

// Summarize computes the pool summary.
func Summarize(clients []Client, events []ProfitEvent) Summary {
	s := Summary{
		TotalClients: len(clients),
		Events:       len(events),
	}
	for _, c := range clients {
		s.TotalInvested = s.TotalInvested.Add(c.Invested)
	}
	for _, e := range events {
		s.TotalProfit = s.TotalProfit.Add(e.Amount)
		if e.Date.After(s.LastEvent) {
			s.LastEvent = e.Date
		}
	}
	s.TotalValue = s.TotalInvested.Add(s.TotalProfit)
	s.AvgReturn = ReturnOf(s.TotalProfit, s.TotalInvested)
	return s
}
