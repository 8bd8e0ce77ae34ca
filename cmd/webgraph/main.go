// Command webgraph renders, lays out, serves and explores attributed graphs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webgraph/internal/cli"
)

const (
	appName = "webgraph"

	// configEnv names a session config file used when --config is not given.
	configEnv = "WEBGRAPH_CONFIG"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	parentPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if err := defaultConfigPath(cmd); err != nil {
			return err
		}

		if parentPreRun != nil {
			return parentPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// defaultConfigPath fills an unset --config flag from $WEBGRAPH_CONFIG.
func defaultConfigPath(cmd *cobra.Command) error {
	path := os.Getenv(configEnv)
	f := cmd.Flags().Lookup("config")
	if path == "" || f == nil || f.Changed {
		return nil
	}
	if err := cmd.Flags().Set("config", path); err != nil {
		return fmt.Errorf("%s: %w", configEnv, err)
	}
	return nil
}
