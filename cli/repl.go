package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// repl reads expressions line by line until quit, exit, or end of input.
func repl(cmd *cobra.Command, s *session) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "calc interactive mode")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, s.cfg.Prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "verbose":
			s.verbose = !s.verbose
			fmt.Fprintf(out, "Verbose mode: %s\n", onOff(s.verbose))
			continue
		case "history":
			if err := s.printHistory(cmd.Context()); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}
		if err := s.eval(line); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return exitError(exitSetup, "reading input: %v", err)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
