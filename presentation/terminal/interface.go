package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pom_automation/application/flow"
)

// TerminalInterface is the interactive prompt of the shell command
type TerminalInterface struct {
	runner *flow.Runner
	reader *bufio.Reader
	out    io.Writer
}

func NewTerminalInterface(runner *flow.Runner, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		runner: runner,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run - reads commands until quit or end of input
func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Page Object test runner")
	fmt.Fprintln(t.out, "=======================")
	fmt.Fprintln(t.out, "Type 'help' for commands, or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		fields := strings.Fields(input)
		if len(fields) > 0 {
			if quit := t.handle(ctx, fields[0], fields[1:]); quit {
				return nil
			}
		}
		if eof || ctx.Err() != nil {
			fmt.Fprintln(t.out)
			return nil
		}
	}
}

// handle executes one command and reports whether the prompt should exit
func (t *TerminalInterface) handle(ctx context.Context, command string, args []string) bool {
	switch command {
	case "quit", "exit", "q":
		fmt.Fprintln(t.out, "Goodbye!")
		return true
	case "help":
		fmt.Fprintln(t.out, "  list              show scenarios")
		fmt.Fprintln(t.out, "  run <name>...     run scenarios")
		fmt.Fprintln(t.out, "  history           show journaled runs")
		fmt.Fprintln(t.out, "  quit              leave")
	case "list":
		printScenarios(t.out, t.runner.Catalog())
	case "history":
		runs, err := t.runner.History()
		if err != nil {
			fmt.Fprintf(t.out, "Failed to load history: %v\n", err)
			return false
		}
		printHistory(t.out, runs)
	case "run":
		if len(args) == 0 {
			fmt.Fprintln(t.out, "Usage: run <name>...")
			return false
		}
		if err := runScenarios(ctx, t.out, t.runner, args); err != nil {
			fmt.Fprintf(t.out, "%v\n", err)
		}
	default:
		fmt.Fprintf(t.out, "Unknown command %q, type 'help'\n", command)
	}
	return false
}
