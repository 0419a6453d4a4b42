package consortium

import (
	"errors"
	"testing"

	"github.com/etnz/consortium/date"
	"github.com/google/go-cmp/cmp"
)

func TestBuildTimeseries_ScenarioA(t *testing.T) {
	clients, events := scenarioA()

	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}

	wantDates := []date.Date{day("2024-01-15"), day("2024-02-15")}
	testCases := []struct {
		id       ClientID
		wantGain []Money
		wantPct  []Percent
	}{
		{id: 1, wantGain: []Money{EUR(200), EUR(300)}, wantPct: []Percent{20, 30}},
		{id: 2, wantGain: []Money{EUR(0), EUR(100)}, wantPct: []Percent{0, 10}},
	}
	for _, tc := range testCases {
		ts, ok := got[tc.id]
		if !ok {
			t.Fatalf("no timeseries for client %d", tc.id)
		}
		if diff := cmp.Diff(wantDates, ts.Dates, cmpOpts); diff != "" {
			t.Errorf("client %d dates mismatch (-want +got):\n%s", tc.id, diff)
		}
		if diff := cmp.Diff(tc.wantGain, ts.CumulativeGain, cmpOpts); diff != "" {
			t.Errorf("client %d cumulative gain mismatch (-want +got):\n%s", tc.id, diff)
		}
		if diff := cmp.Diff(tc.wantPct, ts.PctReturn, cmpOpts); diff != "" {
			t.Errorf("client %d return mismatch (-want +got):\n%s", tc.id, diff)
		}
	}

	if got, want := got[1].CurrentValue(), EUR(1300); !got.Equal(want) {
		t.Errorf("CurrentValue() = %v, want %v", got, want)
	}
}

func TestBuildTimeseries_ScenarioB_Loss(t *testing.T) {
	clients := []Client{NewClient(1, "A", EUR(1000), day("2024-01-01"))}
	events := []ProfitEvent{NewProfitEvent(day("2024-03-01"), EUR(-50))}

	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	ts := got[1]
	if !ts.Latest().Equal(EUR(-50)) {
		t.Errorf("Latest() = %v, want %v", ts.Latest(), EUR(-50))
	}
	if !ts.LatestReturn().Equal(-5) {
		t.Errorf("LatestReturn() = %v, want -5%%", ts.LatestReturn())
	}
}

func TestBuildTimeseries_ScenarioC_NoActiveClient(t *testing.T) {
	clients := []Client{
		NewClient(1, "A", EUR(1000), day("2024-02-01")),
		NewClient(2, "B", EUR(500), day("2024-02-10")),
	}
	events := []ProfitEvent{
		NewProfitEvent(day("2024-01-01"), EUR(100)),
		NewProfitEvent(day("2024-02-05"), EUR(30)),
		NewProfitEvent(day("2024-01-20"), EUR(70)), // not sorted on purpose
	}

	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	if diff := cmp.Diff([]Money{EUR(0), EUR(0), EUR(30)}, got[1].CumulativeGain, cmpOpts); diff != "" {
		t.Errorf("client 1 cumulative gain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Money{EUR(0), EUR(0), EUR(0)}, got[2].CumulativeGain, cmpOpts); diff != "" {
		t.Errorf("client 2 cumulative gain mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTimeseries_Empty(t *testing.T) {
	clients, events := scenarioA()
	for name, tc := range map[string]struct {
		clients []Client
		events  []ProfitEvent
	}{
		"no client":  {nil, events},
		"no event":   {clients, nil},
		"no nothing": {nil, nil},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := BuildTimeseries(tc.clients, tc.events)
			if err != nil {
				t.Fatalf("BuildTimeseries() error = %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("BuildTimeseries() = %v, want an empty map", got)
			}
		})
	}
}

func TestBuildTimeseries_DuplicateDate(t *testing.T) {
	clients, events := scenarioA()
	events = append(events, NewProfitEvent(day("2024-01-15"), EUR(1)))

	_, err := BuildTimeseries(clients, events)
	if !errors.Is(err, ErrDuplicateDate) {
		t.Errorf("BuildTimeseries() error = %v, want %v", err, ErrDuplicateDate)
	}
}

// longHistory returns a pool with clients joining over time and a long list of
// profits and losses that do not divide evenly.
func longHistory() ([]Client, []ProfitEvent) {
	clients := []Client{
		NewClient(1, "A", EUR(1000), day("2024-01-01")),
		NewClient(2, "B", EUR(2500.50), day("2024-01-20")),
		NewClient(3, "C", EUR(0), day("2024-01-01")),
		NewClient(4, "D", EUR(333.33), day("2024-03-03")),
		NewClient(5, "E", EUR(7000), day("2025-01-01")), // joins after every event
	}
	var events []ProfitEvent
	on := day("2023-12-25")
	for i := 0; i < 120; i++ {
		amount := EUR(float64((i*37)%101) - 40.17)
		events = append(events, NewProfitEvent(on, amount))
		on = on.Add(1 + i%3)
	}
	return clients, events
}

func TestBuildTimeseries_Properties(t *testing.T) {
	clients, events := longHistory()
	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	if len(got) != len(clients) {
		t.Fatalf("got %d series, want %d", len(got), len(clients))
	}
	sorted := sortedEvents(events)

	for _, c := range clients {
		ts := got[c.ID]

		// Every series covers every event date, in order.
		if ts.Len() != len(sorted) || len(ts.CumulativeGain) != len(sorted) || len(ts.PctReturn) != len(sorted) {
			t.Fatalf("client %d series has %d/%d/%d points, want %d", c.ID, ts.Len(), len(ts.CumulativeGain), len(ts.PctReturn), len(sorted))
		}
		for i, e := range sorted {
			if ts.Dates[i] != e.Date {
				t.Fatalf("client %d point %d is on %v, want %v", c.ID, i, ts.Dates[i], e.Date)
			}
		}

		// Each point is the previous one plus the allocation of the event.
		previous := EUR(0)
		for i, e := range sorted {
			var allocated Money
			for _, a := range Allocate(clients, e.Date, e.Amount) {
				if a.Client.ID == c.ID {
					allocated = a.Amount
				}
			}
			if want := previous.Add(allocated); !ts.CumulativeGain[i].Equal(want) {
				t.Fatalf("client %d point %d = %v, want %v", c.ID, i, ts.CumulativeGain[i].Decimal(), want.Decimal())
			}
			previous = ts.CumulativeGain[i]
		}

		// Returns derive from the gains.
		for i, gain := range ts.CumulativeGain {
			want := Percent(0)
			if c.Invested.IsPositive() {
				want = Percent(gain.AsFloat() / c.Invested.AsFloat() * 100)
			}
			if !ts.PctReturn[i].Equal(want) {
				t.Errorf("client %d return %d = %v, want %v", c.ID, i, ts.PctReturn[i], want)
			}
		}
	}
}

func TestBuildTimeseries_ConservesProfit(t *testing.T) {
	clients, events := longHistory()
	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}

	// Every event is fully distributed, except the ones when no capital was active.
	distributed := EUR(0)
	for _, e := range events {
		if ActiveCapital(clients, e.Date).IsPositive() {
			distributed = distributed.Add(e.Amount)
		}
	}
	total := EUR(0)
	for _, ts := range got {
		total = total.Add(ts.Latest())
	}
	// shares are rounded to 16 digits, the drift is far below a cent.
	if diff := total.Sub(distributed).Round(); !diff.IsZero() {
		t.Errorf("clients gained %v in total, want %v", total.Decimal(), distributed.Decimal())
	}
}

func TestBuildTimeseries_DoesNotMutateInput(t *testing.T) {
	clients, events := scenarioA()
	events[0], events[1] = events[1], events[0]
	before := append([]ProfitEvent(nil), events...)

	if _, err := BuildTimeseries(clients, events); err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	if diff := cmp.Diff(before, events, cmpOpts); diff != "" {
		t.Errorf("events were modified (-before +after):\n%s", diff)
	}
}

func TestClientTimeseries_AsOf(t *testing.T) {
	clients, events := scenarioA()
	got, err := BuildTimeseries(clients, events)
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	ts := got[1]

	testCases := []struct {
		on       string
		wantGain Money
		wantOK   bool
	}{
		{"2024-01-01", EUR(0), false},
		{"2024-01-15", EUR(200), true},
		{"2024-02-14", EUR(200), true},
		{"2024-12-31", EUR(300), true},
	}
	for _, tc := range testCases {
		gain, _, ok := ts.AsOf(day(tc.on))
		if ok != tc.wantOK || !gain.Equal(tc.wantGain) {
			t.Errorf("AsOf(%s) = %v, %v, want %v, %v", tc.on, gain, ok, tc.wantGain, tc.wantOK)
		}
	}
}

func TestAllocationReport(t *testing.T) {
	clients, events := scenarioA()
	events[0], events[1] = events[1], events[0]

	rows, err := AllocationReport(clients, events)
	if err != nil {
		t.Fatalf("AllocationReport() error = %v", err)
	}
	want := []struct {
		on     string
		id     ClientID
		amount Money
	}{
		{"2024-01-15", 1, EUR(200)},
		{"2024-01-15", 2, EUR(0)},
		{"2024-02-15", 1, EUR(100)},
		{"2024-02-15", 2, EUR(100)},
	}
	if len(rows) != len(want) {
		t.Fatalf("AllocationReport() returned %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Date != day(w.on) || rows[i].Client.ID != w.id || !rows[i].Amount.Equal(w.amount) {
			t.Errorf("row %d = %v/%d/%v, want %v/%d/%v", i, rows[i].Date, rows[i].Client.ID, rows[i].Amount, w.on, w.id, w.amount)
		}
	}
}

func TestSortedSeries(t *testing.T) {
	clients := []Client{
		NewClient(3, "C", EUR(100), day("2024-01-01")),
		NewClient(1, "A", EUR(100), day("2024-01-01")),
		NewClient(2, "B", EUR(100), day("2024-01-01")),
	}
	series, err := BuildTimeseries(clients, []ProfitEvent{NewProfitEvent(day("2024-01-02"), EUR(30))})
	if err != nil {
		t.Fatalf("BuildTimeseries() error = %v", err)
	}
	var got []ClientID
	for _, ts := range SortedSeries(series) {
		got = append(got, ts.Client.ID)
	}
	if diff := cmp.Diff([]ClientID{1, 2, 3}, got); diff != "" {
		t.Errorf("SortedSeries() ids mismatch (-want +got):\n%s", diff)
	}
}
