package consortium

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/consortium/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Line types of the JSONL pool format.
const (
	cmdPool   = "pool"
	cmdClient = "client"
	cmdProfit = "profit"
)

// EncodePool writes the pool as JSONL: a "pool" header line, then one line
// per client and one line per profit event in chronological order.
// Amounts are written with their full precision, the currency appears only
// in the header.
func EncodePool(w io.Writer, p *Pool) error {
	var header jsonObjectWriter
	header.Append("command", cmdPool)
	header.Append("currency", p.Currency)
	if err := writeLine(w, &header); err != nil {
		return err
	}
	for _, c := range p.Clients {
		var l jsonObjectWriter
		l.Append("command", cmdClient)
		l.Append("id", c.ID)
		l.Append("name", c.Name)
		l.Append("invested", c.Invested.value)
		l.Append("joinDate", c.JoinDate)
		l.Optional("note", c.Note)
		if err := writeLine(w, &l); err != nil {
			return fmt.Errorf("could not encode client %d: %w", c.ID, err)
		}
	}
	for _, e := range p.Events {
		var l jsonObjectWriter
		l.Append("command", cmdProfit)
		l.Optional("id", e.ID)
		l.Append("date", e.Date)
		l.Append("amount", e.Amount.value)
		l.Optional("note", e.Note)
		if err := writeLine(w, &l); err != nil {
			return fmt.Errorf("could not encode profit of %s: %w", e.Date, err)
		}
	}
	return nil
}

func writeLine(w io.Writer, l *jsonObjectWriter) error {
	b, err := l.MarshalJSON()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// DecodePool reads a pool written by EncodePool. If the stream has no
// "pool" header, currency is used.
func DecodePool(r io.Reader, currency string) (*Pool, error) {
	var (
		clients []Client
		events  []ProfitEvent
	)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var line struct {
			Command  string          `json:"command"`
			Currency string          `json:"currency"`
			ID       int64           `json:"id"`
			Name     string          `json:"name"`
			Invested decimal.Decimal `json:"invested"`
			JoinDate date.Date       `json:"joinDate"`
			Date     date.Date       `json:"date"`
			Amount   decimal.Decimal `json:"amount"`
			Note     string          `json:"note"`
		}
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", lineNumber, string(lineBytes), err)
		}

		switch line.Command {
		case cmdPool:
			currency = line.Currency
		case cmdClient:
			if line.JoinDate.IsZero() {
				return nil, fmt.Errorf("line %d: client %q has no join date", lineNumber, line.Name)
			}
			clients = append(clients, Client{
				ID:       ClientID(line.ID),
				Name:     line.Name,
				Invested: M(line.Invested, ""),
				JoinDate: line.JoinDate,
				Note:     line.Note,
			})
		case cmdProfit:
			if line.Date.IsZero() {
				return nil, fmt.Errorf("line %d: profit has no date", lineNumber)
			}
			events = append(events, ProfitEvent{
				ID:     line.ID,
				Date:   line.Date,
				Amount: M(line.Amount, ""),
				Note:   line.Note,
			})
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", lineNumber, line.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading pool: %w", err)
	}
	return NewPool(currency, clients, events)
}
