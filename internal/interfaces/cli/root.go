// Package cli implements the eattrue command-line tool: ingredient and
// barcode scans, substance lookups, catalog validation and history, all run
// in-process against the configured store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/bootstrap"
	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// defaultUserID owns scans run without --user.
const defaultUserID = "local"

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// RootOption overrides what persistentPreRun would otherwise build.
type RootOption func(*rootDeps)

type rootDeps struct {
	config  *config.Config
	logger  logging.Logger
	service scanning.Service
	clock   clockwork.Clock
}

// WithConfig skips config file discovery.
func WithConfig(cfg *config.Config) RootOption {
	return func(d *rootDeps) { d.config = cfg }
}

// WithLogger replaces the stderr console logger.
func WithLogger(l logging.Logger) RootOption {
	return func(d *rootDeps) { d.logger = l }
}

// WithService replaces the service opened from configuration.
func WithService(svc scanning.Service) RootOption {
	return func(d *rootDeps) { d.service = svc }
}

// WithClock sets the clock of the service opened from configuration.
func WithClock(c clockwork.Clock) RootOption {
	return func(d *rootDeps) { d.clock = c }
}

// CLIContext carries initialized dependencies through the command tree. The
// scanning service and its store are opened on first use so that commands
// such as catalog validate never touch a backend.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool

	service scanning.Service
	store   scan.Store
	clock   clockwork.Clock
	cancel  context.CancelFunc
}

// Service returns the scanning service, opening the catalog and store the
// first time it is called.
func (c *CLIContext) Service(ctx context.Context) (scanning.Service, error) {
	if c.service != nil {
		return c.service, nil
	}

	resolver, err := bootstrap.OpenResolver(ctx, c.Config.Catalog, c.Logger)
	if err != nil {
		return nil, err
	}
	store, err := bootstrap.OpenStore(ctx, c.Config, c.Logger)
	if err != nil {
		return nil, err
	}

	opts := []scanning.Option{}
	if c.clock != nil {
		opts = append(opts, scanning.WithClock(c.clock))
	}
	c.store = store
	c.service = scanning.NewService(resolver, store, store, c.Logger, opts...)
	return c.service, nil
}

func (c *CLIContext) close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.Logger.Warn("Failed to close store", logging.Err(err))
		}
		c.store = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	_ = c.Logger.Sync()
}

// NewRootCommand creates the root command with its global flags and every
// subcommand.
func NewRootCommand(options ...RootOption) *cobra.Command {
	opts := &RootOptions{}
	deps := &rootDeps{}
	for _, o := range options {
		o(deps)
	}

	cmd := &cobra.Command{
		Use:   "eattrue",
		Short: "EatTrue: ingredient risk analysis for packaged food",
		Long: "EatTrue scores the ingredient list of a packaged food against a curated\n" +
			"substance catalog, adjusting for the user's age, diet and pregnancy status,\n" +
			"and tracks the scores over time.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, deps)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cc, err := GetCLIContext(cmd); err == nil {
				cc.close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./eattrue.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")

	cmd.AddCommand(
		newAnalyzeCmd(),
		newBarcodeCmd(),
		newSubstancesCmd(),
		newCatalogCmd(),
		newHistoryCmd(),
		newProfileCmd(),
	)

	return cmd
}

// persistentPreRun initializes config and logger, then stores the CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions, deps *rootDeps) error {
	switch strings.ToLower(opts.OutputFormat) {
	case OutputText, OutputJSON, OutputTable:
	default:
		return errors.InvalidParam(fmt.Sprintf("unknown output format %q", opts.OutputFormat))
	}

	cfg := deps.config
	if cfg == nil {
		var err error
		if cfg, err = initConfig(opts); err != nil {
			return fmt.Errorf("config initialization failed: %w", err)
		}
	}

	logger := deps.logger
	if logger == nil {
		var err error
		if logger, err = initLogger(opts); err != nil {
			return fmt.Errorf("logger initialization failed: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Verbose:      opts.Verbose,
		service:      deps.service,
		clock:        deps.clock,
	}
	if opts.Timeout > 0 {
		ctx, cliCtx.cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration from --config, then the search paths, then
// EATTRUE_* environment variables alone.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./eattrue.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".eattrue", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/eattrue/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// initLogger creates a console logger on stderr so that stdout carries only
// command output.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// textRenderer is implemented by views with a human-readable form.
type textRenderer interface {
	RenderText(w io.Writer)
}

// tableProvider is implemented by views that list rows.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format selected by --output.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, data)
	}

	switch cliCtx.OutputFormat {
	case OutputJSON:
		return printJSON(cmd, data)
	case OutputTable:
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	out := cmd.OutOrStdout()
	switch v := data.(type) {
	case textRenderer:
		v.RenderText(out)
	case tableProvider:
		fmt.Fprint(out, FormatTable(v.TableHeaders(), v.TableRows()))
	case string:
		fmt.Fprintln(out, v)
	case fmt.Stringer:
		fmt.Fprintln(out, v.String())
	default:
		fmt.Fprintf(out, "%+v\n", v)
	}
	return nil
}

func printTable(cmd *cobra.Command, data interface{}) error {
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(cmd, data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", msg)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
