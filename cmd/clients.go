package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/consortium"
	"github.com/etnz/consortium/date"
	"github.com/etnz/consortium/renderer"
	"github.com/etnz/consortium/store"
	"github.com/google/subcommands"
)

type addClientCmd struct {
	name     string
	invested string
	date     string
	note     string
}

func (*addClientCmd) Name() string     { return "add-client" }
func (*addClientCmd) Synopsis() string { return "add a client to the pool" }
func (*addClientCmd) Usage() string {
	return `csm add-client -n <name> -i <invested> [-d <join date>] [-note <text>]

  Adds a client who invested an amount in the pool on the join date. The
  client takes part in the allocation of every profit from that day on.
`
}

func (c *addClientCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the client")
	f.StringVar(&c.invested, "i", "", "Invested capital, in the pool currency")
	f.StringVar(&c.date, "d", date.Today().String(), "Join date")
	f.StringVar(&c.note, "note", "", "Free text note")
}

func (c *addClientCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.invested == "" {
		fmt.Fprintln(os.Stderr, "Error: -n and -i are required")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing join date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		invested, err := consortium.ParseMoney(c.invested, s.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing invested capital: %v\n", err)
			return subcommands.ExitUsageError
		}
		client := consortium.NewClient(0, c.name, invested, on)
		client.Note = c.note
		id, err := s.AddClient(ctx, client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding client: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Added client %d (%s)\n", id, client.Name)
		return subcommands.ExitSuccess
	})
}

type updateClientCmd struct {
	id       int64
	name     string
	invested string
	date     string
	note     string
}

func (*updateClientCmd) Name() string     { return "update-client" }
func (*updateClientCmd) Synopsis() string { return "modify a client" }
func (*updateClientCmd) Usage() string {
	return `csm update-client -id <id> [-n <name>] [-i <invested>] [-d <join date>] [-note <text>]

  Modifies the fields given on the command line, the others are kept.
  Changing the invested capital or the join date changes every past allocation.
`
}

func (c *updateClientCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Id of the client")
	f.StringVar(&c.name, "n", "", "New name")
	f.StringVar(&c.invested, "i", "", "New invested capital")
	f.StringVar(&c.date, "d", "", "New join date")
	f.StringVar(&c.note, "note", "", "New note")
}

func (c *updateClientCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		client, err := s.Client(ctx, consortium.ClientID(c.id))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if set["n"] {
			client.Name = c.name
		}
		if set["i"] {
			if client.Invested, err = consortium.ParseMoney(c.invested, s.Currency()); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing invested capital: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if set["d"] {
			if client.JoinDate, err = date.Parse(c.date); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing join date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if set["note"] {
			client.Note = c.note
		}
		if err := s.UpdateClient(ctx, client); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating client: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Updated client %d (%s)\n", client.ID, client.Name)
		return subcommands.ExitSuccess
	})
}

type deleteClientCmd struct{}

func (*deleteClientCmd) Name() string     { return "delete-client" }
func (*deleteClientCmd) Synopsis() string { return "remove clients from the pool" }
func (*deleteClientCmd) Usage() string {
	return `csm delete-client <id>...

  Removes the clients. Past profits are then shared among the remaining clients.
`
}

func (c *deleteClientCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteClientCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		for _, id := range ids {
			if err := s.DeleteClient(ctx, consortium.ClientID(id)); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting client: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Fprintf(stdout, "Deleted client %d\n", id)
		}
		return subcommands.ExitSuccess
	})
}

type clientsCmd struct{}

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "list the clients" }
func (*clientsCmd) Usage() string {
	return `csm clients

  Lists the clients of the pool with their invested capital and join date.
`
}

func (c *clientsCmd) SetFlags(f *flag.FlagSet) {}

func (c *clientsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		clients, err := s.Clients(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing clients: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.ClientsMarkdown(clients))
		return subcommands.ExitSuccess
	})
}

// parseIDs parses a non empty list of ids.
func parseIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one id is required")
	}
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}
