// Package cmd implements the csm command line: client and profit
// bookkeeping, allocation reports and the HTTP API.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/consortium/config"
	"github.com/etnz/consortium/logger"
	"github.com/etnz/consortium/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// GroupedCommand is a subcommand and the group it is listed in.
type GroupedCommand struct {
	subcommands.Command
	Group string
}

// Commands lists every csm subcommand.
var Commands = []GroupedCommand{
	{&addClientCmd{}, "clients"},
	{&updateClientCmd{}, "clients"},
	{&deleteClientCmd{}, "clients"},
	{&clientsCmd{}, "clients"},

	{&setProfitCmd{}, "profits"},
	{&updateProfitCmd{}, "profits"},
	{&deleteProfitCmd{}, "profits"},
	{&profitsCmd{}, "profits"},

	{&allocationsCmd{}, "reports"},
	{&returnsCmd{}, "reports"},
	{&summaryCmd{}, "reports"},

	{&exportCmd{}, "data"},
	{&importCmd{}, "data"},
	{&csvCmd{}, "data"},

	{&serveCmd{}, "server"},
	{&topicCmd{}, "help"},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file (default $CSM_CONFIG)")
var dbPath = flag.String("db", "", "Path to the SQLite database (default from the configuration, consortium.db)")
var currency = flag.String("currency", "", "Currency of the pool (default from the configuration, EUR)")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (default from the configuration, info)")

// stdout is where reports are written.
var stdout io.Writer = os.Stdout

// Settings returns the configuration, with the global flags applied on top.
func Settings() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, cfg.Validate()
}

// InitLogging sets up the global logger from the settings.
func InitLogging() error {
	cfg, err := Settings()
	if err != nil {
		return err
	}
	return logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
}

// OpenStore is the central function to open the pool database.
func OpenStore() (*store.SQLite, error) {
	cfg, err := Settings()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.DB); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("db", cfg.DB).Msg("database does not exist, creating an empty one")
	}
	return store.Open(cfg.DB, cfg.Currency)
}

// withStore opens the store, runs fn and closes the store.
func withStore(fn func(s *store.SQLite) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	return fn(s)
}
