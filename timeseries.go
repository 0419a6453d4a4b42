package consortium

import (
	"cmp"
	"slices"

	"github.com/etnz/consortium/date"
)

// ClientTimeseries is the history of a client's cumulative gain, one point per profit event.
//
// All the series built together share the same Dates.
type ClientTimeseries struct {
	Client         Client
	Dates          []date.Date
	CumulativeGain []Money   // running sum of the client's allocations
	PctReturn      []Percent // CumulativeGain relative to the invested capital
}

// Len returns the number of points.
func (ts *ClientTimeseries) Len() int { return len(ts.Dates) }

// Latest returns the last cumulative gain, zero if there is no point.
func (ts *ClientTimeseries) Latest() Money {
	if len(ts.CumulativeGain) == 0 {
		return M(0, ts.Client.Invested.cur)
	}
	return ts.CumulativeGain[len(ts.CumulativeGain)-1]
}

// LatestReturn returns the last percentage return, zero if there is no point.
func (ts *ClientTimeseries) LatestReturn() Percent {
	if len(ts.PctReturn) == 0 {
		return 0
	}
	return ts.PctReturn[len(ts.PctReturn)-1]
}

// CurrentValue returns the invested capital plus the latest cumulative gain.
func (ts *ClientTimeseries) CurrentValue() Money { return ts.Client.Invested.Add(ts.Latest()) }

// AsOf returns the cumulative gain and return of the last point on or before day on.
// It returns false if there is no such point.
func (ts *ClientTimeseries) AsOf(on date.Date) (gain Money, pct Percent, ok bool) {
	i, found := slices.BinarySearchFunc(ts.Dates, on, date.Date.Compare)
	if found {
		return ts.CumulativeGain[i], ts.PctReturn[i], true
	}
	// Not found. `i` is the index where `on` would be inserted.
	if i == 0 {
		return M(0, ts.Client.Invested.cur), 0, false
	}
	return ts.CumulativeGain[i-1], ts.PctReturn[i-1], true
}

// BuildTimeseries walks the profit events in chronological order and
// accumulates, for every client, its allocation of each event.
//
// Events do not need to be sorted. Every series has exactly one point per
// event, including for events before the client joined (a zero allocation)
// and for events where no capital was active (the running total is kept).
//
// It returns an empty map when there is no client or no event, and an error
// only when the input breaks an invariant (see Validate).
func BuildTimeseries(clients []Client, events []ProfitEvent) (map[ClientID]*ClientTimeseries, error) {
	if err := Validate(clients, events); err != nil {
		return nil, err
	}
	series := make(map[ClientID]*ClientTimeseries, len(clients))
	if len(clients) == 0 || len(events) == 0 {
		return series, nil
	}

	sorted := sortedEvents(events)
	dates := make([]date.Date, len(sorted))
	for i, e := range sorted {
		dates[i] = e.Date
	}

	// running totals, indexed like clients.
	totals := make([]Money, len(clients))
	for i, c := range clients {
		totals[i] = M(0, c.Invested.cur)
		series[c.ID] = &ClientTimeseries{
			Client:         c,
			Dates:          slices.Clone(dates),
			CumulativeGain: make([]Money, 0, len(sorted)),
			PctReturn:      make([]Percent, 0, len(sorted)),
		}
	}

	for _, e := range sorted {
		activeSum := ActiveCapital(clients, e.Date)
		if activeSum.IsPositive() {
			for i, a := range allocate(clients, e.Date, e.Amount, activeSum) {
				totals[i] = totals[i].Add(a.Amount)
			}
		}
		for i, c := range clients {
			series[c.ID].CumulativeGain = append(series[c.ID].CumulativeGain, totals[i])
		}
	}

	for _, ts := range series {
		for _, gain := range ts.CumulativeGain {
			ts.PctReturn = append(ts.PctReturn, ReturnOf(gain, ts.Client.Invested))
		}
	}
	return series, nil
}

// SortedSeries returns the series ordered by client id.
func SortedSeries(series map[ClientID]*ClientTimeseries) []*ClientTimeseries {
	sorted := make([]*ClientTimeseries, 0, len(series))
	for _, ts := range series {
		sorted = append(sorted, ts)
	}
	slices.SortFunc(sorted, func(a, b *ClientTimeseries) int { return cmp.Compare(a.Client.ID, b.Client.ID) })
	return sorted
}

// AllocationReport returns the allocation of every profit event, in
// chronological order of the events then in the order of clients.
func AllocationReport(clients []Client, events []ProfitEvent) ([]Allocation, error) {
	if err := Validate(clients, events); err != nil {
		return nil, err
	}
	rows := make([]Allocation, 0, len(clients)*len(events))
	for _, e := range sortedEvents(events) {
		rows = append(rows, Allocate(clients, e.Date, e.Amount)...)
	}
	return rows, nil
}

// MarshalJSON writes the series as a list of points.
func (ts *ClientTimeseries) MarshalJSON() ([]byte, error) {
	type point struct {
		Date           date.Date `json:"date"`
		CumulativeGain Money     `json:"cumulativeGain"`
		PctReturn      Percent   `json:"pctReturn"`
	}
	points := make([]point, ts.Len())
	for i, on := range ts.Dates {
		points[i] = point{Date: on, CumulativeGain: ts.CumulativeGain[i], PctReturn: ts.PctReturn[i]}
	}
	var w jsonObjectWriter
	w.Append("client", ts.Client)
	w.Append("currentValue", ts.CurrentValue())
	w.Append("points", points)
	return w.MarshalJSON()
}
