package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/consortium"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the pool overview.
func SummaryMarkdown(s consortium.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Pool Summary")
	if s.LastEvent.IsZero() {
		doc.PlainText("No profit recorded yet.")
	} else {
		doc.PlainText(fmt.Sprintf("Last profit on %s.", s.LastEvent))
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Clients", fmt.Sprint(s.TotalClients)},
			{"Profit Events", fmt.Sprint(s.Events)},
			{"Total Invested", s.TotalInvested.String()},
			{"Total Profit", s.TotalProfit.SignedString()},
			{md.Bold("Total Value"), md.Bold(s.TotalValue.String())},
			{"Return", s.AvgReturn.SignedString()},
		},
	})

	return doc.String()
}
