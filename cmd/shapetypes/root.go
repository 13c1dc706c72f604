package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/shapetypes/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "shapetypes",
	Short: "Compile and check array shape type declarations",
	Long: `shapetypes works with array<T> and array{key: T} type expressions:
compile them to their canonical form, validate JSON values against them,
and manage declared function signatures.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger() *slog.Logger {
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// colorize wraps s in an ANSI color when stdout is a terminal.
func colorize(code, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func green(s string) string { return colorize("32", s) }
func red(s string) string { return colorize("31", s) }
