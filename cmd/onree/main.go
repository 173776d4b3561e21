// Package main is the entry point for the onree editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/dshills/onree/internal/app"
	"github.com/dshills/onree/internal/config"
	"github.com/dshills/onree/internal/editor"
	"github.com/dshills/onree/internal/renderer/backend"
	"github.com/dshills/onree/internal/renderer/highlight"
)

// errNotTerminal is returned when stdin or stdout is not a terminal.
var errNotTerminal = errors.New("onree needs a terminal")

var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "onree [file]",
		Short:   "A small terminal text editor",
		Long:    "onree edits one file with syntax highlighting and incremental search.\n\nKeys: Ctrl-S save, Ctrl-Q quit, Ctrl-F find.",
		Version: editor.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runEditor(file)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default "+config.DefaultConfigDir()+"/config.toml)")
	root.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.Flags().StringVar(&logFile, "log-file", "", "log file path")

	root.AddCommand(newGrammarsCmd())
	return root
}

func runEditor(file string) error {
	if logLevel != "" {
		switch strings.ToLower(logLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", logLevel)
		}
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	application, err := app.New(app.Options{
		ConfigPath: configPath,
		File:       file,
		LogLevel:   logLevel,
		LogFile:    logFile,
	})
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer application.Close()

	tb, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := application.SetBackend(tb); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	return application.Run()
}

func newGrammarsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List the syntax grammars available to the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.Option
			if configPath != "" {
				opts = append(opts, config.WithPath(configPath))
			}
			cfg := config.New(opts...)
			if err := cfg.Load(context.Background()); err != nil {
				return err
			}

			registry := highlight.DefaultRegistry()
			if _, err := highlight.LoadDir(registry, cfg.Grammars().Dir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			if jsonOutput {
				return writeGrammarsJSON(cmd.OutOrStdout(), registry.Grammars())
			}
			for _, g := range registry.Grammars() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", g.Filetype, strings.Join(g.FileMatch, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print grammars as a JSON array")
	return cmd
}

// writeGrammarsJSON writes grammars as a JSON array of grammar files.
func writeGrammarsJSON(w io.Writer, grammars []*highlight.Grammar) error {
	out := "[]"
	for _, g := range grammars {
		js, err := highlight.ExportJSON(g)
		if err != nil {
			return err
		}
		if out, err = sjson.SetRaw(out, "-1", js); err != nil {
			return fmt.Errorf("encoding grammars: %w", err)
		}
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
