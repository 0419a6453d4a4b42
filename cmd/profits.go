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

type setProfitCmd struct {
	date   string
	amount string
	note   string
}

func (*setProfitCmd) Name() string     { return "set-profit" }
func (*setProfitCmd) Synopsis() string { return "record the profit of a day" }
func (*setProfitCmd) Usage() string {
	return `csm set-profit [-d <date>] -a <amount> [-note <text>]

  Records the profit realised by the pool on a day. A loss is a negative
  amount. There is a single profit per day: setting it again replaces it.
`
}

func (c *setProfitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the profit")
	f.StringVar(&c.amount, "a", "", "Amount of the profit, negative for a loss")
	f.StringVar(&c.note, "note", "", "Free text note")
}

func (c *setProfitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		amount, err := consortium.ParseMoney(c.amount, s.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		id, err := s.SetProfit(ctx, consortium.ProfitEvent{Date: on, Amount: amount, Note: c.note})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error recording profit: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Recorded profit %d of %s on %s\n", id, amount.StringFixed(), on)
		return subcommands.ExitSuccess
	})
}

type updateProfitCmd struct {
	id     int64
	date   string
	amount string
	note   string
}

func (*updateProfitCmd) Name() string     { return "update-profit" }
func (*updateProfitCmd) Synopsis() string { return "modify a recorded profit" }
func (*updateProfitCmd) Usage() string {
	return `csm update-profit -id <id> [-d <date>] [-a <amount>] [-note <text>]

  Modifies the fields given on the command line, the others are kept.
  Moving a profit onto the date of another one is an error.
`
}

func (c *updateProfitCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Id of the profit")
	f.StringVar(&c.date, "d", "", "New date")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.note, "note", "", "New note")
}

func (c *updateProfitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		profits, err := s.Profits(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing profits: %v\n", err)
			return subcommands.ExitFailure
		}
		var e consortium.ProfitEvent
		for _, p := range profits {
			if p.ID == c.id {
				e = p
			}
		}
		if e.ID == 0 {
			fmt.Fprintf(os.Stderr, "Error: profit %d: %v\n", c.id, store.ErrNotFound)
			return subcommands.ExitFailure
		}

		if set["d"] {
			if e.Date, err = date.Parse(c.date); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if set["a"] {
			if e.Amount, err = consortium.ParseMoney(c.amount, s.Currency()); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if set["note"] {
			e.Note = c.note
		}
		if err := s.UpdateProfit(ctx, e); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating profit: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Updated profit %d of %s on %s\n", e.ID, e.Amount.StringFixed(), e.Date)
		return subcommands.ExitSuccess
	})
}

type deleteProfitCmd struct{}

func (*deleteProfitCmd) Name() string     { return "delete-profit" }
func (*deleteProfitCmd) Synopsis() string { return "remove recorded profits" }
func (*deleteProfitCmd) Usage() string {
	return `csm delete-profit <id>...

  Removes the profits with these ids.
`
}

func (c *deleteProfitCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteProfitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		for _, id := range ids {
			if err := s.DeleteProfit(ctx, id); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting profit: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Fprintf(stdout, "Deleted profit %d\n", id)
		}
		return subcommands.ExitSuccess
	})
}

type profitsCmd struct{}

func (*profitsCmd) Name() string     { return "profits" }
func (*profitsCmd) Synopsis() string { return "list the recorded profits" }
func (*profitsCmd) Usage() string {
	return `csm profits

  Lists the profits of the pool in chronological order.
`
}

func (c *profitsCmd) SetFlags(f *flag.FlagSet) {}

func (c *profitsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		profits, err := s.Profits(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing profits: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.ProfitsMarkdown(profits))
		return subcommands.ExitSuccess
	})
}
