package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/consortium"
	md "github.com/nao1215/markdown"
)

// ReturnsMarkdown renders an overview of every client's latest return, then
// the cumulative history of each one.
func ReturnsMarkdown(series []*consortium.ClientTimeseries) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cumulative Returns")
	if len(series) == 0 {
		doc.PlainText("No client.")
		return doc.String()
	}

	overview := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Client", "Invested", "Gain", "Return", "Current Value"},
	}
	for _, ts := range series {
		overview.Rows = append(overview.Rows, []string{
			clientLabel(ts.Client),
			ts.Client.Invested.String(),
			ts.Latest().SignedString(),
			ts.LatestReturn().SignedString(),
			ts.CurrentValue().String(),
		})
	}
	doc.Table(overview)

	for _, ts := range series {
		doc.H2(clientLabel(ts.Client))
		if ts.Len() == 0 {
			doc.PlainText("No profit recorded.")
			continue
		}
		history := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Date", "Cumulative Gain", "Return"},
		}
		for i, on := range ts.Dates {
			history.Rows = append(history.Rows, []string{
				on.String(),
				ts.CumulativeGain[i].SignedString(),
				ts.PctReturn[i].SignedString(),
			})
		}
		doc.Table(history)
	}
	return doc.String()
}

func clientLabel(c consortium.Client) string { return fmt.Sprintf("%s (%d)", c.Name, c.ID) }
