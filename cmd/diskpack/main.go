// diskpack compacts disk maps and prints the checksum of the compacted
// layout.
//
// The disk map is read from --input (a file, or - for stdin). Each
// selected strategy runs on its own copy of the decoded layout:
//
//	diskpack --input disk.txt
//	block-swap: 1928
//	region: 2858
//
// With --interactive, disk maps are read line by line from a prompt and
// both checksums are printed for each.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/rickchristie/diskpack/config"
)

// version is overridden at link time.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	interactive bool
	showVersion bool
	showHelp    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.Default()
	var opts options

	flagSet := pflag.NewFlagSet("diskpack", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flagSet.StringVarP(&cfg.Policy, "policy", "p", cfg.Policy, "compaction policy: all, block-swap or region")
	flagSet.StringVarP(&cfg.Input, "input", "i", cfg.Input, "disk map file, - for stdin")
	flagSet.StringVar(&cfg.Snapshot.Path, "snapshot", cfg.Snapshot.Path, "write the compacted layout to this snapshot file")
	flagSet.BoolVar(&cfg.Render.Diff, "diff", cfg.Render.Diff, "print a diff of the region listings")
	flagSet.BoolVar(&cfg.Render.Dense, "dense", cfg.Render.Dense, "print the compacted layout")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flagSet.StringVar(&cfg.Trace, "trace", cfg.Trace, "write every compaction event to this YAML file")
	flagSet.BoolVar(&opts.interactive, "interactive", false, "read disk maps from a prompt")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.showHelp {
		printHelp(flagSet, stderr)
		return nil
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "diskpack %s\n", version)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = overrideChanged(loaded, cfg, flagSet)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return execute(cfg, opts.interactive, logger, stdin, stdout)
}

func execute(
	cfg config.Config,
	interactive bool,
	logger *slog.Logger,
	stdin io.Reader,
	stdout io.Writer,
) (err error) {
	var extraHooks []any
	if cfg.Trace != "" {
		t, traceErr := startTrace(cfg.Trace)
		if traceErr != nil {
			return traceErr
		}
		defer func() {
			if closeErr := t.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		extraHooks = append(extraHooks, t.stream)
	}

	r, err := newRunner(cfg, logger, stdout, extraHooks...)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(r, stdout)
	}

	diskMap, err := readInput(cfg.Input, stdin)
	if err != nil {
		return err
	}
	return r.process(diskMap)
}

// overrideChanged returns loaded with every explicitly set flag value
// from flagged applied on top.
func overrideChanged(loaded, flagged config.Config, flagSet *pflag.FlagSet) config.Config {
	if flagSet.Changed("policy") {
		loaded.Policy = flagged.Policy
	}
	if flagSet.Changed("input") {
		loaded.Input = flagged.Input
	}
	if flagSet.Changed("snapshot") {
		loaded.Snapshot.Path = flagged.Snapshot.Path
	}
	if flagSet.Changed("diff") {
		loaded.Render.Diff = flagged.Render.Diff
	}
	if flagSet.Changed("dense") {
		loaded.Render.Dense = flagged.Render.Dense
	}
	if flagSet.Changed("log-level") {
		loaded.LogLevel = flagged.LogLevel
	}
	if flagSet.Changed("trace") {
		loaded.Trace = flagged.Trace
	}
	return loaded
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `diskpack compacts a disk map and prints the checksum of the result.

Usage:
  diskpack [flags]

Examples:
  # Run both strategies on a file
  diskpack --input disk.txt

  # Region compaction from stdin, with the compacted layout
  echo 2333133121414131402 | diskpack --policy region --dense

  # Settings from a file, snapshot written next to it
  diskpack --config diskpack.yaml --snapshot out.dpks

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
