// finratios: annual financial statement ratio analysis for a listed company.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/finratios/internal/config"
	"github.com/seenimoa/finratios/internal/console"
	"github.com/seenimoa/finratios/internal/logging"
	"github.com/seenimoa/finratios/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finratios",
	Short: "Financial statement ratio analysis",
	Long: `finratios fetches a company's annual income statement, balance sheet and
cash flow statement from Yahoo Finance, computes ROE, ROA, Debt to Equity and
Net Profit Margin per fiscal year, charts the trends and exports everything
to a spreadsheet. Defaults to BMW AG (BMW.DE).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
	RunE: runAnalysis,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.Flags().StringP("output", "o", "", "spreadsheet path (default: BMW_Financial_Analysis.xlsx)")
	rootCmd.Flags().String("ticker", "", "Yahoo Finance ticker override, e.g. BMW.DE")
	rootCmd.Flags().Bool("no-charts", false, "skip the trend charts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
}

// applyFlags layers explicitly set command-line flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("output") {
		cfg.Export.Path, _ = flags.GetString("output")
	}
	if flags.Changed("ticker") {
		ticker, _ := flags.GetString("ticker")
		cfg.Analysis.Ticker = utils.NormalizeTicker(ticker)
		cfg.Analysis.Company = utils.BaseSymbol(ticker)
	}
	if flags.Changed("no-charts") {
		noCharts, _ := flags.GetBool("no-charts")
		cfg.Charts.Enabled = !noCharts
	}
}

// runAnalysis runs the pipeline. Pipeline failures are reported on stdout
// and the command still succeeds; only config problems fail the command.
func runAnalysis(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	printer := console.New(cmd.OutOrStdout(), cfg.Analysis.Company, cfg.Analysis.Ticker)
	runner := newRunner(cfg, logger, printer)

	if _, err := runner.Run(cmd.Context()); err != nil {
		logger.Error("analysis failed", zap.Error(err))
		printer.Error(err)
	}
	return nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "finratios %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  finratios — Configuration")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Company:       %s (%s)\n", cfg.Analysis.Company, cfg.Analysis.Ticker)
		fmt.Fprintf(out, "  Data source:   %s (timeout %s, %d req/s)\n",
			cfg.DataSource.BaseURL, cfg.DataSource.Timeout(), cfg.DataSource.RateLimit)
		fmt.Fprintf(out, "  Session:       %v\n", cfg.DataSource.Session)
		fmt.Fprintf(out, "  Workbook:      %s\n", cfg.Export.Path)
		fmt.Fprintf(out, "  Charts:        enabled=%v open=%v dir=%s\n", cfg.Charts.Enabled, cfg.Charts.Open, cfg.Charts.Dir)
		fmt.Fprintf(out, "  Logging:       %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}
