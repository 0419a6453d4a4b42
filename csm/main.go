// Command csm manages an investment pool: clients, profits, and the
// allocation of every profit among the clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/consortium/cmd"
	"github.com/etnz/consortium/docs"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog/log"
)

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	// A missing .env is fine.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
		log.Debug().Str("command", sub).Msg("no such command or extension")
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"db":        predict.Files("*.db"),
			"currency":  predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
			"log-level": predict.Set{"debug", "info", "warn", "error"},
		},
	}
	for _, c := range cmd.Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		f.VisitAll(func(fl *flag.Flag) {
			switch fl.Name {
			case "o":
				sub.Flags[fl.Name] = predict.Files("*")
			case "p":
				sub.Flags[fl.Name] = predict.Set{"day", "week", "month", "quarter", "year"}
			default:
				sub.Flags[fl.Name] = predict.Something
			}
		})
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*.jsonl")
		case "topic":
			sub.Args = predict.Set(docs.AllTopics())
		}
		root.Sub[c.Name()] = sub
	}
	return root
}
