package consortium

import (
	"errors"
	"fmt"

	"github.com/etnz/consortium/date"
)

var (
	// ErrDuplicateDate is returned when two profit events share the same date.
	// Accepting them would count the day twice in every cumulative gain.
	ErrDuplicateDate = errors.New("duplicate profit date")
	// ErrNegativeInvested is returned for a client with a negative invested capital.
	ErrNegativeInvested = errors.New("negative invested capital")
	// ErrDuplicateClient is returned when two clients share the same id.
	ErrDuplicateClient = errors.New("duplicate client id")
	// ErrCurrencyMismatch is returned when amounts are not all in the same currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Validate checks the invariants the engine relies on and returns an error
// detailing all the failures, or nil.
//
// Amounts without currency are accepted with any other currency.
func Validate(clients []Client, events []ProfitEvent) error {
	var errs []error
	var currency string
	checkCurrency := func(what string, m Money) {
		switch {
		case m.cur == "":
		case currency == "":
			currency = m.cur
		case m.cur != currency:
			errs = append(errs, fmt.Errorf("%w: %s is in %s, expected %s", ErrCurrencyMismatch, what, m.cur, currency))
		}
	}

	ids := make(map[ClientID]struct{}, len(clients))
	for _, c := range clients {
		if _, exists := ids[c.ID]; exists {
			errs = append(errs, fmt.Errorf("%w: %d", ErrDuplicateClient, c.ID))
		}
		ids[c.ID] = struct{}{}
		if c.Invested.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: client %d (%s) invested %s", ErrNegativeInvested, c.ID, c.Name, c.Invested.value))
		}
		checkCurrency(fmt.Sprintf("client %d invested capital", c.ID), c.Invested)
	}

	days := make(map[date.Date]struct{}, len(events))
	for _, e := range events {
		if _, exists := days[e.Date]; exists {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateDate, e.Date))
		}
		days[e.Date] = struct{}{}
		checkCurrency(fmt.Sprintf("profit of %s", e.Date), e.Amount)
	}
	return errors.Join(errs...)
}
