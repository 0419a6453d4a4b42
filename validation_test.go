package consortium

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	clients, events := scenarioA()
	if err := Validate(clients, events); err != nil {
		t.Errorf("Validate(scenario A) = %v, want nil", err)
	}
	if err := Validate(nil, nil); err != nil {
		t.Errorf("Validate(nil, nil) = %v, want nil", err)
	}
}

func TestValidate_AllFailures(t *testing.T) {
	clients := []Client{
		NewClient(1, "A", EUR(-1), day("2024-01-01")),
		NewClient(1, "B", M(10, "USD"), day("2024-01-01")),
	}
	events := []ProfitEvent{
		NewProfitEvent(day("2024-01-15"), EUR(1)),
		NewProfitEvent(day("2024-01-15"), EUR(2)),
	}
	err := Validate(clients, events)
	for _, want := range []error{ErrNegativeInvested, ErrDuplicateClient, ErrCurrencyMismatch, ErrDuplicateDate} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() = %v, want it to include %v", err, want)
		}
	}
}

func TestValidate_NoCurrency(t *testing.T) {
	// amounts without currency match any other currency.
	clients := []Client{
		NewClient(1, "A", M(10, ""), day("2024-01-01")),
		NewClient(2, "B", M(10, "USD"), day("2024-01-01")),
	}
	events := []ProfitEvent{NewProfitEvent(day("2024-01-15"), M(3, ""))}
	if err := Validate(clients, events); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
