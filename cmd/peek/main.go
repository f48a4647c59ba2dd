package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/peek/internal/app"
	"github.com/kk-code-lab/peek/internal/config"
	"github.com/kk-code-lab/peek/internal/logging"
	"github.com/kk-code-lab/peek/internal/preview"
	"github.com/kk-code-lab/peek/internal/provider"
	"github.com/kk-code-lab/peek/internal/xmlview"
)

// Exit codes for granular error handling
const (
	ExitSuccess      = 0
	ExitInvalidInput = 1
	ExitConfigError  = 2
	ExitRuntimeError = 3
)

var (
	cfgFile    string
	mimeType   string
	printMode  bool
	kindOnly   bool
	searchTerm string
	xpathExpr  string
	initConfig bool
	verbose    bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peek [flags] <path|url>",
		Short: "Preview a file or URL in the terminal",
		Long: `peek picks the best preview for a file or URL (image or font metadata,
an XML outline, pretty-printed JSON, or plain text) and shows it in a
scrollable, searchable terminal viewer.`,
		Version:       config.Version,
		Args:          validateArgs,
		RunE:          run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/peek/config.toml)")
	cmd.Flags().StringVarP(&mimeType, "mime", "m", "", "declared MIME type (default: detected from the source)")
	cmd.Flags().BoolVarP(&printMode, "print", "p", false, "write the preview to stdout instead of opening the viewer")
	cmd.Flags().BoolVarP(&kindOnly, "kind", "k", false, "print only the selected preview kind")
	cmd.Flags().StringVarP(&searchTerm, "search", "s", "", "print only preview lines containing this text")
	cmd.Flags().StringVarP(&xpathExpr, "xpath", "x", "", "print the XML nodes selected by this XPath expression")
	cmd.Flags().BoolVar(&initConfig, "init-config", false, "write a commented default config file and exit")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := rootCmd.Execute(); err != nil {
		var exit *exitErr
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		// Argument and flag errors from cobra.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitInvalidInput)
	}
}

// validateArgs requires the target except when only writing a config file.
func validateArgs(cmd *cobra.Command, args []string) error {
	if initConfig {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	if initConfig {
		return writeExampleConfig(cmd)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return exitError(cmd, ExitConfigError, "failed to load config: %v", err)
	}

	interactive := !printMode && !kindOnly && searchTerm == "" && xpathExpr == ""
	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr(), interactive)
	if err != nil {
		return exitError(cmd, ExitConfigError, "failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	target := args[0]
	if !isURL(target) {
		info, statErr := os.Stat(target)
		if statErr != nil {
			return exitError(cmd, ExitInvalidInput, "cannot open %s: %v", target, statErr)
		}
		if info.IsDir() {
			return exitError(cmd, ExitInvalidInput, "%s is a directory", target)
		}
	}

	p := provider.Open(target, provider.Options{
		MaxBytes:  cfg.Preview.MaxBytes,
		Client:    &http.Client{Timeout: cfg.Network.Timeout},
		UserAgent: cfg.Network.UserAgent,
		Cache:     provider.NewCache(),
	})
	selector := preview.NewSelector(logger)
	selector.TabWidth = cfg.Preview.TabWidth

	if interactive {
		return runViewer(cmd, p, selector, target, logger)
	}
	return runPrint(cmd, p, selector)
}

// runPrint fetches once so fetch failures surface as an exit code instead of
// an empty preview.
func runPrint(cmd *cobra.Command, p provider.ContentProvider, selector *preview.Selector) error {
	content, err := p.RequestContent(context.Background())
	if err != nil {
		return exitError(cmd, ExitRuntimeError, "failed to fetch: %v", err)
	}
	result := selector.SelectContent(content, preview.ResolveMIMEType(p, mimeType), p.ContentType)

	err = apppkg.Print(cmd.OutOrStdout(), result, apppkg.PrintOptions{
		KindOnly: kindOnly,
		Search:   searchTerm,
		XPath:    xpathExpr,
	})
	if errors.Is(err, apppkg.ErrNotSearchable) || errors.Is(err, apppkg.ErrNotXML) || errors.Is(err, xmlview.ErrInvalidQuery) {
		return exitError(cmd, ExitInvalidInput, "cannot query preview: %v", err)
	}
	if err != nil {
		return exitError(cmd, ExitRuntimeError, "failed to write preview: %v", err)
	}
	return nil
}

// writeExampleConfig creates the file at --config, or at the default path.
// An existing file is never overwritten.
func writeExampleConfig(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return exitError(cmd, ExitConfigError, "%v", err)
		}
	}
	if _, err := os.Stat(path); err == nil {
		return exitError(cmd, ExitConfigError, "config file already exists: %s", path)
	}
	if err := config.Default().CreateExampleConfig(path); err != nil {
		return exitError(cmd, ExitConfigError, "failed to write config: %v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
	return nil
}

func runViewer(cmd *cobra.Command, p provider.ContentProvider, selector *preview.Selector, target string, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return exitError(cmd, ExitRuntimeError, "Error initializing screen: %v", err)
	}
	app, err := apppkg.NewApplication(screen, apppkg.Options{
		Provider: p,
		MIMEType: mimeType,
		Source:   target,
		Selector: selector,
		Logger:   logger,
	})
	if err != nil {
		return exitError(cmd, ExitRuntimeError, "Error initializing application: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}

// newLogger writes to logging.file when set. Without a file the viewer
// discards logs, since stderr shares the terminal with the screen.
func newLogger(cfg *config.Config, stderr io.Writer, interactive bool) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}

	w := stderr
	closeFn := func() {}
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		w = io.Discard
	}
	return logging.New(w, level, format), closeFn, nil
}

func isURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string {
	return e.msg
}

func exitError(cmd *cobra.Command, code int, format string, args ...interface{}) *exitErr {
	msg := fmt.Sprintf(format, args...)
	if msg != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", msg)
	}
	return &exitErr{code: code, msg: msg}
}
