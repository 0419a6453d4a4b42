package consortium

import (
	"errors"
	"testing"

	"github.com/etnz/consortium/date"
)

func TestNewPool(t *testing.T) {
	clients := []Client{
		NewClient(2, "B", M(1000, ""), day("2024-02-01")),
		NewClient(1, "A", EUR(1000), day("2024-01-01")),
	}
	events := []ProfitEvent{
		NewProfitEvent(day("2024-02-15"), M(200, "")),
		NewProfitEvent(day("2024-01-15"), EUR(200)),
	}
	p, err := NewPool("EUR", clients, events)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	if p.Clients[0].ID != 2 {
		t.Errorf("NewPool() must keep clients order, got %d first", p.Clients[0].ID)
	}
	if p.Events[0].Date != day("2024-01-15") {
		t.Errorf("NewPool() must sort events, got %v first", p.Events[0].Date)
	}
	if p.Clients[0].Invested.Currency() != "EUR" || p.Events[1].Amount.Currency() != "EUR" {
		t.Errorf("NewPool() must set the pool currency on amounts without one")
	}
	if clients[0].Invested.Currency() != "" {
		t.Errorf("NewPool() modified its input")
	}
}

func TestNewPool_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		currency string
		clients  []Client
		events   []ProfitEvent
		want     error
	}{
		{
			name:     "duplicate date",
			currency: "EUR",
			events:   []ProfitEvent{NewProfitEvent(day("2024-01-01"), EUR(1)), NewProfitEvent(day("2024-01-01"), EUR(2))},
			want:     ErrDuplicateDate,
		},
		{
			name:     "negative invested",
			currency: "EUR",
			clients:  []Client{NewClient(1, "A", EUR(-1), day("2024-01-01"))},
			want:     ErrNegativeInvested,
		},
		{
			name:     "duplicate client",
			currency: "EUR",
			clients:  []Client{NewClient(1, "A", EUR(1), day("2024-01-01")), NewClient(1, "B", EUR(1), day("2024-01-01"))},
			want:     ErrDuplicateClient,
		},
		{
			name:     "mixed currencies",
			currency: "EUR",
			clients:  []Client{NewClient(1, "A", EUR(1), day("2024-01-01"))},
			events:   []ProfitEvent{NewProfitEvent(day("2024-01-01"), M(1, "USD"))},
			want:     ErrCurrencyMismatch,
		},
		{
			name:     "all in another currency",
			currency: "EUR",
			clients:  []Client{NewClient(1, "A", M(1, "USD"), day("2024-01-01"))},
			want:     ErrCurrencyMismatch,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPool(tc.currency, tc.clients, tc.events)
			if !errors.Is(err, tc.want) {
				t.Errorf("NewPool() error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := NewPool("XYZ", nil, nil); err == nil {
		t.Errorf("NewPool() with an unknown currency should fail")
	}
}

func TestPool_Allocate(t *testing.T) {
	clients, events := scenarioA()
	p, err := NewPool("EUR", clients, events)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}

	// a day with an event distributes it.
	rows := p.Allocate(day("2024-02-15"))
	if !rows[0].Amount.Equal(EUR(100)) || !rows[1].Amount.Equal(EUR(100)) {
		t.Errorf("Allocate(2024-02-15) = %v, %v, want 100, 100", rows[0].Amount, rows[1].Amount)
	}

	// a day without event only shows the weighting.
	rows = p.Allocate(day("2024-01-20"))
	if !rows[0].Amount.IsZero() || !rows[0].Share.Equal(S(1)) || rows[1].Active {
		t.Errorf("Allocate(2024-01-20) = %+v", rows)
	}
}

func TestPool_AllocationReport(t *testing.T) {
	clients, events := scenarioA()
	p, err := NewPool("EUR", clients, events)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	rows, err := p.AllocationReport(date.NewRange(day("2024-02-10"), date.Monthly))
	if err != nil {
		t.Fatalf("AllocationReport() error = %v", err)
	}
	if len(rows) != 2 || rows[0].Date != day("2024-02-15") {
		t.Errorf("AllocationReport(February) = %v, want the two rows of 2024-02-15", rows)
	}
	rows, err = p.AllocationReport(date.Range{})
	if err != nil {
		t.Fatalf("AllocationReport() error = %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("AllocationReport(all) returned %d rows, want 4", len(rows))
	}
}

func TestPool_Summary(t *testing.T) {
	p, err := NewPool("USD", nil, nil)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	s := p.Summary()
	if s.TotalInvested.Currency() != "USD" || s.TotalValue.Currency() != "USD" {
		t.Errorf("Summary() of an empty pool must be in the pool currency, got %q", s.TotalInvested.Currency())
	}
}

func TestPool_Client(t *testing.T) {
	clients, events := scenarioA()
	p, err := NewPool("EUR", clients, events)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	if c, ok := p.Client(2); !ok || c.Name != "B" {
		t.Errorf("Client(2) = %v, %v", c, ok)
	}
	if _, ok := p.Client(42); ok {
		t.Errorf("Client(42) should not exist")
	}
	if e, ok := p.Event(day("2024-01-15")); !ok || !e.Amount.Equal(EUR(200)) {
		t.Errorf("Event(2024-01-15) = %v, %v", e, ok)
	}
}
