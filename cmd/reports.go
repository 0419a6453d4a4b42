package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/consortium"
	"github.com/etnz/consortium/date"
	"github.com/etnz/consortium/renderer"
	"github.com/etnz/consortium/store"
	"github.com/google/subcommands"
)

type allocationsCmd struct {
	date   string
	period string
	start  string
}

func (*allocationsCmd) Name() string     { return "allocations" }
func (*allocationsCmd) Synopsis() string { return "show how profits are shared among clients" }
func (*allocationsCmd) Usage() string {
	return `csm allocations [-d <date> [-p <period>] | -s <start date>]

  Without flags, shows the allocation of every recorded profit.

  With -d alone, shows the allocation of that single day: the profit of the
  day if any, and in any case the share of each client.

  With -p, shows the allocation of every profit in the period (day, week,
  month, quarter, year) containing -d. With -s, of every profit since that date.
`
}

func (c *allocationsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date")
	f.StringVar(&c.period, "p", "", "Period containing the reference date: day, week, month, quarter, year")
	f.StringVar(&c.start, "s", "", "Start date, ignored if -p is set")
}

// selection returns either a single day, or a range of dates.
func (c *allocationsCmd) selection() (on date.Date, r date.Range, err error) {
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			return
		}
	}
	switch {
	case c.period != "":
		var p date.Period
		if p, err = date.ParsePeriod(c.period); err != nil {
			return
		}
		if on.IsZero() {
			on = date.Today()
		}
		return date.Date{}, date.NewRange(on, p), nil
	case c.start != "":
		if r.From, err = date.Parse(c.start); err != nil {
			return
		}
		r.To = on
		return date.Date{}, r, nil
	}
	return on, r, nil
}

func (c *allocationsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, rng, err := c.selection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading pool: %v\n", err)
			return subcommands.ExitFailure
		}
		if !on.IsZero() {
			printMarkdown(renderer.AllocationsMarkdown("Allocation on "+on.String(), pool.Allocate(on)))
			return subcommands.ExitSuccess
		}
		rows, err := pool.AllocationReport(rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing allocations: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AllocationsMarkdown("Allocations, "+rng.String(), rows))
		return subcommands.ExitSuccess
	})
}

type returnsCmd struct {
	client int64
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "show the cumulative gain of each client" }
func (*returnsCmd) Usage() string {
	return `csm returns [-c <client id>]

  Shows, for every client or a single one, the gain accumulated after each
  profit and the corresponding return on the invested capital.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.client, "c", 0, "Only show this client")
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading pool: %v\n", err)
			return subcommands.ExitFailure
		}
		series, err := pool.Timeseries()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
			return subcommands.ExitFailure
		}
		// clients without series when there is no profit yet.
		for _, cl := range pool.Clients {
			if _, ok := series[cl.ID]; !ok {
				series[cl.ID] = &consortium.ClientTimeseries{Client: cl}
			}
		}

		list := consortium.SortedSeries(series)
		if c.client != 0 {
			ts, ok := series[consortium.ClientID(c.client)]
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: client %d: %v\n", c.client, store.ErrNotFound)
				return subcommands.ExitFailure
			}
			list = []*consortium.ClientTimeseries{ts}
		}
		printMarkdown(renderer.ReturnsMarkdown(list))
		return subcommands.ExitSuccess
	})
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the pool summary" }
func (*summaryCmd) Usage() string {
	return `csm summary

  Displays the number of clients, the invested capital, the total profit and
  the return of the pool as a whole.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading pool: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.SummaryMarkdown(pool.Summary()))
		return subcommands.ExitSuccess
	})
}
