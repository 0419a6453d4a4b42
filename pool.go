package consortium

import (
	"fmt"
	"slices"

	"github.com/etnz/consortium/date"
)

// Pool is a consistent snapshot of the clients and profit events of an
// investment pool, in a single currency. It is the input of every report.
//
// A Pool is never modified by the reports: they are recomputed in full from
// the snapshot at each call.
type Pool struct {
	Currency string
	Clients  []Client      // in the order given to NewPool
	Events   []ProfitEvent // in chronological order
}

// NewPool creates a pool from a snapshot. Amounts without currency are
// assumed to be in the pool currency, amounts in any other currency are an error.
func NewPool(currency string, clients []Client, events []ProfitEvent) (*Pool, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid pool currency: %w", err)
	}
	p := &Pool{
		Currency: currency,
		Clients:  slices.Clone(clients),
		Events:   sortedEvents(events),
	}
	for i := range p.Clients {
		p.Clients[i].Invested = p.Clients[i].Invested.In(currency)
	}
	for i := range p.Events {
		p.Events[i].Amount = p.Events[i].Amount.In(currency)
	}
	if err := Validate(p.Clients, p.Events); err != nil {
		return nil, err
	}
	// Validate alone would accept a pool entirely in another currency.
	if len(p.Clients) > 0 && p.Clients[0].Invested.cur != currency {
		return nil, fmt.Errorf("%w: pool is in %s, clients in %s", ErrCurrencyMismatch, currency, p.Clients[0].Invested.cur)
	}
	if len(p.Events) > 0 && p.Events[0].Amount.cur != currency {
		return nil, fmt.Errorf("%w: pool is in %s, profits in %s", ErrCurrencyMismatch, currency, p.Events[0].Amount.cur)
	}
	return p, nil
}

// Client returns the client with this id.
func (p *Pool) Client(id ClientID) (Client, bool) {
	i := slices.IndexFunc(p.Clients, func(c Client) bool { return c.ID == id })
	if i < 0 {
		return Client{}, false
	}
	return p.Clients[i], true
}

// Event returns the profit event of day on.
func (p *Pool) Event(on date.Date) (ProfitEvent, bool) {
	i, found := slices.BinarySearchFunc(p.Events, on, func(e ProfitEvent, on date.Date) int { return e.Date.Compare(on) })
	if !found {
		return ProfitEvent{}, false
	}
	return p.Events[i], true
}

// EventsIn returns the profit events within r, in chronological order.
func (p *Pool) EventsIn(r date.Range) []ProfitEvent {
	var events []ProfitEvent
	for _, e := range p.Events {
		if r.Contains(e.Date) {
			events = append(events, e)
		}
	}
	return events
}

// Allocate returns the allocation of day on. The amount distributed is the
// profit event of that day, or zero if there is none, in which case the
// allocations still show the capital weighting.
func (p *Pool) Allocate(on date.Date) []Allocation {
	total := M(0, p.Currency)
	if e, ok := p.Event(on); ok {
		total = e.Amount
	}
	return Allocate(p.Clients, on, total)
}

// AllocationReport returns the allocations of every profit event within r.
func (p *Pool) AllocationReport(r date.Range) ([]Allocation, error) {
	return AllocationReport(p.Clients, p.EventsIn(r))
}

// Timeseries returns the cumulative gain history of every client.
func (p *Pool) Timeseries() (map[ClientID]*ClientTimeseries, error) {
	return BuildTimeseries(p.Clients, p.Events)
}

// Summary returns the pool summary.
func (p *Pool) Summary() Summary {
	s := Summarize(p.Clients, p.Events)
	s.TotalInvested = s.TotalInvested.In(p.Currency)
	s.TotalProfit = s.TotalProfit.In(p.Currency)
	s.TotalValue = s.TotalValue.In(p.Currency)
	return s
}
