package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/dolmetscher/internal/cli"
	"codeberg.org/snonux/dolmetscher/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	var initErr error
	cobra.OnInitialize(func() {
		initErr = cli.InitConfig(flags.CfgFile)
	})

	// Errors are rendered as plain text until the processor can localise them
	describe := func(err error) string { return err.Error() }

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}

		logger := newLogger(flags.Verbose)
		slog.SetDefault(logger)

		cfg, err := cli.LoadConfig()
		if err != nil {
			return err
		}

		proc := processor.NewProcessor(flags, cfg, logger)
		describe = proc.Describe

		return runCommand(cmd, args, flags, proc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, describe(err))
		stop()
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags, proc *processor.Processor) error {
	ctx := cmd.Context()

	switch {
	case cmd.Flags().Changed("set-key"):
		return proc.SetAPIKey(flags.SetKey)
	case flags.ShowKey:
		return proc.ShowAPIKey()
	case flags.ListModels:
		return proc.ListModels(ctx)
	case flags.InputFile != "":
		return proc.ProcessFile(ctx)
	case len(args) > 0:
		return proc.ProcessText(ctx, strings.Join(args, " "))
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
