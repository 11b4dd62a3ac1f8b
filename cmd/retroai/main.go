package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/retroai/internal/app"
	"github.com/five82/retroai/internal/config"
	"github.com/five82/retroai/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "retroai: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var opts app.Options
	root := &cobra.Command{
		Use:           "retroai",
		Short:         "Search the Internet Archive and ask a local model about retro computing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.In = cmd.InOrStdin()
			opts.Out = cmd.OutOrStdout()
			return app.Run(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/retroai/config.toml)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/retroai/prefs.toml)")
	root.Flags().StringVar(&opts.Model, "model", "", "model name passed to ollama run (overrides config)")
	root.Flags().BoolVar(&opts.Debug, "debug", false, "write debug-level logs")

	root.AddCommand(newLogsCommand())
	return root
}

func newLogsCommand() *cobra.Command {
	var (
		configPath string
		lines      int
	)
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the retroai log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tail, err := logging.Tail(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			return logging.Pretty(cmd.OutOrStdout(), tail, isTerminal(cmd.OutOrStdout()))
		},
	}
	logs.Flags().StringVar(&configPath, "config", "", "config file path (default ~/.config/retroai/config.toml)")
	logs.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show")
	return logs
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
