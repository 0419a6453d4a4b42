package consortium

import (
	"encoding/csv"
	"io"
	"strconv"
)

// allocationsHeader is the header of the CSV export of allocations.
var allocationsHeader = []string{"date", "id", "name", "invested", "join_date", "active", "share", "alloc_profit"}

// WriteAllocationsCSV writes allocation rows as CSV, with a header line.
// Amounts are rounded to the currency minor unit, shares are written in full.
func WriteAllocationsCSV(w io.Writer, rows []Allocation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(allocationsHeader); err != nil {
		return err
	}
	for _, a := range rows {
		err := cw.Write([]string{
			a.Date.String(),
			strconv.FormatInt(int64(a.Client.ID), 10),
			a.Client.Name,
			a.Client.Invested.StringFixed(),
			a.Client.JoinDate.String(),
			strconv.FormatBool(a.Active),
			a.Share.String(),
			a.Amount.StringFixed(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
