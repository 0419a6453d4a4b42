package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/consortium"
	md "github.com/nao1215/markdown"
)

// ClientsMarkdown renders the list of clients.
func ClientsMarkdown(clients []consortium.Client) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Clients")
	if len(clients) == 0 {
		doc.PlainText("No client.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Name", "Invested", "Joined", "Note"},
	}
	var total consortium.Money
	for _, c := range clients {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(c.ID),
			c.Name,
			c.Invested.String(),
			c.JoinDate.String(),
			c.Note,
		})
		total = total.Add(c.Invested)
	}
	table.Rows = append(table.Rows, []string{"", md.Bold("Total"), md.Bold(total.String()), "", ""})
	doc.Table(table)

	return doc.String()
}

// ProfitsMarkdown renders the list of profit events.
func ProfitsMarkdown(events []consortium.ProfitEvent) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Profits")
	if len(events) == 0 {
		doc.PlainText("No profit recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Date", "Profit", "Note"},
	}
	var total consortium.Money
	for _, e := range events {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(e.ID),
			e.Date.String(),
			e.Amount.SignedString(),
			e.Note,
		})
		total = total.Add(e.Amount)
	}
	table.Rows = append(table.Rows, []string{"", md.Bold("Total"), md.Bold(total.SignedString()), ""})
	doc.Table(table)

	return doc.String()
}
