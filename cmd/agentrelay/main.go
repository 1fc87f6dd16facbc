// Package main provides the agentrelay CLI for normalizing multi-provider
// agent record streams into the canonical message model.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	// Import family packages to trigger init() registration.
	_ "agentrelay/internal/acp"
	_ "agentrelay/internal/legacy"
	_ "agentrelay/internal/native"

	"agentrelay/internal/canon"
	"agentrelay/internal/format"
	"agentrelay/internal/logger"
	"agentrelay/internal/normalize"
	"agentrelay/internal/permission"
	"agentrelay/internal/store"
	"agentrelay/internal/stream"
	"agentrelay/internal/wire"
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "agentrelay",
	Short:   "Normalize multi-provider agent records into canonical messages",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"log pipeline details (env: AGENTRELAY_VERBOSE)")

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newModesCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "agentrelay: %v\n", err)
		os.Exit(1)
	}
}

func logLevel() logger.Level {
	if verbose || os.Getenv("AGENTRELAY_VERBOSE") != "" {
		return logger.DebugLevel
	}
	return logger.WarnLevel
}

func newNormalizeCmd() *cobra.Command {
	var (
		formatFlag   string
		wrap         int
		signals      bool
		forceColor   bool
		forceNoColor bool
	)

	cmd := &cobra.Command{
		Use:   "normalize <records.jsonl | ->",
		Short: "Normalize a JSONL record stream into canonical messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			normalizer := normalize.New(logger.Default(logLevel()))
			errs := cmd.ErrOrStderr()

			var msgs []*canon.Message
			err := stream.IterateFile(args[0], warnTo(errs), func(entry stream.Entry) error {
				result := normalizer.Normalize(entry.ID, entry.LocalID, entry.CreatedAt, entry.Record)
				if result.Message != nil {
					msgs = append(msgs, result.Message)
				}
				if signals && result.Signal != nil {
					fmt.Fprintf(errs, "signal: %s\n", result.Signal.Kind) //nolint:errcheck
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			outFile, _ := out.(*os.File)
			useColor := format.UseColor(outFile, forceColor, forceNoColor)
			if wrap < 0 {
				wrap = format.TerminalWidth(outFile, 100)
			}
			return format.WriteMessages(out, msgs, formatFlag, wrap, useColor)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "text", "output format: text, plain, json, or jsonl")
	flags.IntVar(&wrap, "wrap", 0, "wrap message body at the given column width (-1 to fit the terminal)")
	flags.BoolVar(&signals, "signals", false, "print lifecycle signals to stderr")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")

	return cmd
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <records.jsonl | ->",
		Short: "Report the detected provider family for each record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			counts := make(map[string]int)

			err := stream.IterateFile(args[0], warnTo(cmd.ErrOrStderr()), func(entry stream.Entry) error {
				label := "unrecognized"
				if family, ok := wire.Detect(entry.Record.Content); ok {
					label = string(family.Provider)
				}
				counts[label]++
				_, err := fmt.Fprintf(out, "%d\t%s\n", entry.Line, label)
				return err
			})
			if err != nil {
				return err
			}

			for _, provider := range wire.Providers() {
				if count := counts[string(provider)]; count > 0 {
					fmt.Fprintf(out, "%s: %d\n", provider, count) //nolint:errcheck
				}
			}
			if count := counts["unrecognized"]; count > 0 {
				fmt.Fprintf(out, "unrecognized: %d\n", count) //nolint:errcheck
			}
			return nil
		},
	}
	return cmd
}

func newStatsCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "stats <records.jsonl | ->",
		Short: "Summarize a record stream through the session log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalizer := normalize.New(logger.Default(logLevel()))
			log := store.NewSessionLog()

			err := stream.IterateFile(args[0], warnTo(cmd.ErrOrStderr()), func(entry stream.Entry) error {
				result := normalizer.Normalize(entry.ID, entry.LocalID, entry.CreatedAt, entry.Record)
				log.Append(result.Message)
				log.ApplySignal(result.Signal)
				return nil
			})
			if err != nil {
				return err
			}

			report := format.StatsReport{
				Session:  log.Stats(),
				Pipeline: normalizer.Metrics(),
				Thinking: log.Thinking(),
			}
			return format.WriteStats(cmd.OutOrStdout(), report, formatFlag)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "table", "output format: table or json")
	return cmd
}

func newModesCmd() *cobra.Command {
	var (
		check      bool
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "modes [provider] [token]",
		Short: "List or validate permission-mode tokens per provider family",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if check {
				if len(args) != 2 {
					return errors.New("--check requires <provider> and <token>")
				}
				if err := permission.Validate(wire.Provider(args[0]), args[1]); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s is valid for %s\n", args[1], args[0]) //nolint:errcheck
				return nil
			}

			providers := wire.Providers()
			if len(args) >= 1 {
				providers = []wire.Provider{wire.Provider(args[0])}
			}

			all := make(map[string][]string, len(providers))
			for _, provider := range providers {
				modes, err := permission.Modes(provider)
				if err != nil {
					return err
				}
				all[string(provider)] = modes
			}

			switch strings.ToLower(formatFlag) {
			case "", "text":
				for _, provider := range providers {
					fmt.Fprintf(out, "%s: %s\n", provider, strings.Join(all[string(provider)], ", ")) //nolint:errcheck
				}
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&check, "check", false, "validate a token against a provider family")
	flags.StringVar(&formatFlag, "format", "text", "output format: text or json")
	return cmd
}

func warnTo(w io.Writer) func(line int, err error) {
	return func(line int, err error) {
		fmt.Fprintf(w, "warning: line %d: %v\n", line, err) //nolint:errcheck
	}
}
