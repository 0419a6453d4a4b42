package renderer

import (
	"bytes"

	"github.com/etnz/consortium"
	md "github.com/nao1215/markdown"
)

// AllocationsMarkdown renders allocation rows, one table per date.
// Rows must be grouped by date, as returned by the allocation reports.
func AllocationsMarkdown(title string, rows []consortium.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(rows) == 0 {
		doc.PlainText("Nothing to allocate.")
		return doc.String()
	}

	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].Date == rows[start].Date {
			end++
		}
		allocationTable(doc, rows[start:end])
		start = end
	}
	return doc.String()
}

func allocationTable(doc *md.Markdown, rows []consortium.Allocation) {
	doc.H2(rows[0].Date.String())

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Client", "Invested", "Active", "Share", "Allocated"},
	}
	var total consortium.Money
	for _, a := range rows {
		active := "no"
		if a.Active {
			active = "yes"
		}
		table.Rows = append(table.Rows, []string{
			clientLabel(a.Client),
			a.Client.Invested.String(),
			active,
			a.Share.Percent().String(),
			a.Amount.SignedString(),
		})
		total = total.Add(a.Amount)
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", "", md.Bold(total.SignedString())})
	doc.Table(table)
}
