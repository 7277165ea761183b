package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

// runInteractive reads disk maps from a prompt until q, Ctrl-C or EOF.
func runInteractive(r *runner, stdout io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "disk map (or 'q' to quit): " + colorReset,
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
		Stdout:          stdout,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Fprintf(stdout, "%sGoodbye!%s\n", colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := evalLine(r, stdout, line); quit {
			fmt.Fprintf(stdout, "%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}
	}
}

// evalLine compacts one prompt line and prints one checksum per
// strategy. It reports whether the user asked to quit.
func evalLine(r *runner, w io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "q", "Q", "quit", "exit":
		return true
	}

	results, _, err := r.compact(line)
	if err != nil {
		fmt.Fprintf(w, "%sError: %v%s\n", colorRed, err, colorReset)
		return false
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("%s: %d", result.Strategy, result.Checksum))
	}
	fmt.Fprintf(w, "%s  %s(%d blocks)%s\n",
		strings.Join(parts, "  "),
		colorDim, results[0].Sequence.Len(), colorReset)
	return false
}
