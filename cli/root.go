// Package cli implements the calc command line.
package cli

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/config"
)

// NewRootCmd creates the calc command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] [expression]",
		Short: "Evaluate arithmetic expressions",
		Long: "calc evaluates infix arithmetic over + - * / and parentheses.\n" +
			"With no expression it reads expressions interactively.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runRoot,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Print tokens and syntax tree along with the result")
	cmd.Flags().BoolP("interactive", "i", false, "Read expressions interactively")
	cmd.Flags().Bool("dump", false, "Dump the syntax tree structure")
	cmd.Flags().String("in", "", "Evaluate each line of a file ('-' for stdin)")
	cmd.Flags().String("format", "", `Result formatting string (default "%g")`)
	cmd.Flags().String("config", "", "Path to config file (default: ./calc.yaml or ~/.calc/config.yaml)")
	cmd.Flags().String("history", "", "Path to SQLite history database (default: in memory)")
	cmd.Flags().Int("history-max", 0, "Keep at most this many entries in the history database (0: no limit)")
	cmd.Flags().String("otlp-endpoint", "", "OTLP/HTTP endpoint to export spans to")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	inname, _ := cmd.Flags().GetString("in")
	if err := checkModes(len(args) == 1, interactive, inname != ""); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	s, err := newSession(cmd.Context(), cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return exitError(exitSetup, "%v", err)
	}
	defer s.close()
	s.dump, _ = cmd.Flags().GetBool("dump")

	switch {
	case len(args) == 1:
		if err := s.eval(args[0]); err != nil {
			return exitError(exitFailure, "%v", err)
		}
		return nil
	case inname != "":
		return runFile(cmd, s, inname)
	default:
		return repl(cmd, s)
	}
}

// checkModes rejects combinations of input sources. At most one of an
// expression argument, --in, and --interactive may be given.
func checkModes(expr, interactive, file bool) error {
	n := 0
	for _, b := range []bool{expr, interactive, file} {
		if b {
			n++
		}
	}
	if n > 1 {
		return exitError(exitSetup, "choose one of an expression argument, --in, or --interactive")
	}
	return nil
}

// loadConfig reads the discovered config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path, found, err := config.Discover(explicit)
	if err != nil {
		return config.Config{}, exitError(exitSetup, "%v", err)
	}
	cfg := config.Default()
	if found {
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, exitError(exitSetup, "%v", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("history") {
		cfg.History.Path, _ = flags.GetString("history")
	}
	if flags.Changed("history-max") {
		cfg.History.MaxEntries, _ = flags.GetInt("history-max")
	}
	if flags.Changed("otlp-endpoint") {
		cfg.Telemetry.Endpoint, _ = flags.GetString("otlp-endpoint")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, exitError(exitSetup, "%v", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// runFile evaluates each non-blank line of a file as its own expression.
// Failures are reported as they happen; the run fails if any line failed.
func runFile(cmd *cobra.Command, s *session, name string) error {
	var in io.Reader
	if name == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return exitError(exitSetup, "%v", err)
		}
		defer f.Close()
		in = f
	}

	failed := 0
	sc := bufio.NewScanner(in)
	for line := 1; sc.Scan(); line++ {
		expr := strings.TrimSpace(sc.Text())
		if expr == "" {
			continue
		}
		if err := s.eval(expr); err != nil {
			cmd.PrintErrf("line %d: %v\n", line, err)
			failed++
		}
	}
	if err := sc.Err(); err != nil {
		return exitError(exitSetup, "reading %s: %v", name, err)
	}
	if failed > 0 {
		return exitError(exitFailure, "%d of the expressions failed", failed)
	}
	return nil
}
