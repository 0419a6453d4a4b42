package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/consortium"
	"github.com/etnz/consortium/date"
	"github.com/etnz/consortium/store"
	"github.com/google/subcommands"
)

// create opens the output file, or stdout when path is empty. The returned
// function closes the file.
func create(path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the pool as JSON lines" }
func (*exportCmd) Usage() string {
	return `csm export [-o <file>]

  Writes the currency, the clients and the profits of the pool, one JSON
  object per line. The output can be read back by 'csm import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading pool: %v\n", err)
			return subcommands.ExitFailure
		}
		w, closeOutput, err := create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := consortium.EncodePool(w, pool); err != nil {
			closeOutput()
			fmt.Fprintf(os.Stderr, "Error writing pool: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := closeOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a pool from JSON lines" }
func (*importCmd) Usage() string {
	return `csm import <file>

  Reads a file written by 'csm export'. Clients are added or replaced by id,
  profits are added or replaced by date. The whole file is imported or none of it.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single file is required")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := consortium.DecodePool(file, s.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		if err := s.Import(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Imported %d clients and %d profits\n", len(pool.Clients), len(pool.Events))
		return subcommands.ExitSuccess
	})
}

type csvCmd struct {
	output string
	date   string
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "export the allocations as CSV" }
func (*csvCmd) Usage() string {
	return `csm csv [-d <date>] [-o <file>]

  Writes one row per client and per profit, or per client for the single
  day given with -d. Amounts are rounded to the currency minor unit.
`
}

func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
	f.StringVar(&c.date, "d", "", "Only this day")
}

func (c *csvCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on date.Date
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return withStore(func(s *store.SQLite) subcommands.ExitStatus {
		pool, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading pool: %v\n", err)
			return subcommands.ExitFailure
		}
		var rows []consortium.Allocation
		if on.IsZero() {
			if rows, err = pool.AllocationReport(date.Range{}); err != nil {
				fmt.Fprintf(os.Stderr, "Error computing allocations: %v\n", err)
				return subcommands.ExitFailure
			}
		} else {
			rows = pool.Allocate(on)
		}

		w, closeOutput, err := create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := consortium.WriteAllocationsCSV(w, rows); err != nil {
			closeOutput()
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := closeOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
