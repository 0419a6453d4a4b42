package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/consortium/config"
	"github.com/rs/zerolog/log"
)

// Environment passed to extensions. They are the names config.Load reads,
// so an extension written in Go sees the same settings as csm.
const (
	EnvDB       = config.EnvPrefix + "DB"
	EnvCurrency = config.EnvPrefix + "CURRENCY"
	EnvLogLevel = config.EnvPrefix + "LOG_LEVEL"
)

// RunExtension attempts to find and execute an external csm-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "csm-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found")
		return false, 0
	}

	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Pass the resolved global settings as environment variables.
	cmd.Env = append(os.Environ(),
		EnvDB+"="+cfg.DB,
		EnvCurrency+"="+cfg.Currency,
		EnvLogLevel+"="+cfg.LogLevel,
	)
	if *configFile != "" {
		cmd.Env = append(cmd.Env, config.EnvConfig+"="+*configFile)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
