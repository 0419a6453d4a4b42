package consortium

import (
	"slices"

	"github.com/etnz/consortium/date"
)

// ClientID identifies a client. It is assigned once, by the store, and never changes.
type ClientID int64

// Client is an investor of the pool.
type Client struct {
	ID       ClientID  `json:"id"`
	Name     string    `json:"name"`
	Invested Money     `json:"invested"` // capital committed at join time, never negative.
	JoinDate date.Date `json:"joinDate"`
	Note     string    `json:"note,omitempty"`
}

// NewClient creates a client with no note.
func NewClient(id ClientID, name string, invested Money, joinDate date.Date) Client {
	return Client{ID: id, Name: name, Invested: invested, JoinDate: joinDate}
}

// IsActive reports whether the client participates in allocations on day on,
// that is, whether they joined on or before that day.
func (c Client) IsActive(on date.Date) bool { return !c.JoinDate.After(on) }

// ProfitEvent is a profit (or a loss when negative) realised by the whole pool on a given day.
//
// There is at most one event per date.
type ProfitEvent struct {
	ID     int64     `json:"id,omitempty"`
	Date   date.Date `json:"date"`
	Amount Money     `json:"amount"`
	Note   string    `json:"note,omitempty"`
}

// NewProfitEvent creates an event with no id and no note.
func NewProfitEvent(on date.Date, amount Money) ProfitEvent {
	return ProfitEvent{Date: on, Amount: amount}
}

// sortedEvents returns a copy of events in chronological order.
func sortedEvents(events []ProfitEvent) []ProfitEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b ProfitEvent) int { return a.Date.Compare(b.Date) })
	return sorted
}
