// Command goforecast forecasts a CSV time series from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goforecast/forecast"
	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

var (
	// Global flags
	configFile string
	verbose    bool

	// CSV input
	csvFile     string
	dateColumn  string
	valueColumn string
	idColumn    string
	idFilter    string
	delimiter   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goforecast",
		Short: "Demand forecasting over historical time series",
		Long: `Reads a (date, value) series from CSV, fits linear regression,
exponential smoothing and ARIMA models, and prints the forecast as JSON.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Engine config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Debug logging")
	rootCmd.PersistentFlags().StringVarP(&csvFile, "file", "f", "", "Input CSV file")
	rootCmd.PersistentFlags().StringVar(&dateColumn, "date-column", "", "Date column name (default: first of ds/date/Date/Month/timestamp)")
	rootCmd.PersistentFlags().StringVar(&valueColumn, "value-column", "", "Value column name (default: first of y/value/Value/sales/Sales)")
	rootCmd.PersistentFlags().StringVar(&idColumn, "id-column", "", "Series ID column used with --id")
	rootCmd.PersistentFlags().StringVar(&idFilter, "id", "", "Keep only rows whose ID column equals this value")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", ",", "Field delimiter")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(detectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCmd forecasts the series and writes the result
func runCmd() *cobra.Command {
	var (
		method      string
		periods     int
		confidence  float64
		noInterval  bool
		seasonality string
		output      string
		diagnostics bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Forecast a series and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := forecast.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			raw, err := readInput()
			if err != nil {
				return err
			}

			opts := forecast.DefaultOptions()
			opts.Periods = cfg.DefaultPeriods
			if cmd.Flags().Changed("periods") {
				opts.Periods = periods
			}
			if opts.Method, err = forecast.ParseMethod(method); err != nil {
				return err
			}
			if opts.Seasonality, err = forecast.ParseSeasonality(seasonality); err != nil {
				return err
			}
			opts.ConfidenceLevel = confidence
			opts.ConfidenceInterval = !noInterval

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			engine, err := forecast.New(cfg, forecast.WithLogger(newLogger(cfg)))
			if err != nil {
				return err
			}
			result, diag, err := engine.Run(ctx, raw, opts)
			if err != nil {
				return fmt.Errorf("forecast failed: %w", err)
			}

			var payload any = result
			if diagnostics {
				payload = struct {
					Result      *forecast.Result      `json:"result"`
					Diagnostics *forecast.Diagnostics `json:"diagnostics"`
				}{result, diag}
			}

			if output == "" {
				return writeJSON(cmd.OutOrStdout(), payload)
			}
			return writeFile(output, payload)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "auto", "Method: auto, linear, exp_smoothing or arima")
	cmd.Flags().IntVarP(&periods, "periods", "p", 12, "Number of future points (default from config)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level in (0,1)")
	cmd.Flags().BoolVar(&noInterval, "no-interval", false, "Omit the confidence interval")
	cmd.Flags().StringVar(&seasonality, "seasonality", "auto", "Seasonality override: auto, yes or no")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "Include run diagnostics in the output")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the forecast after this long")

	return cmd
}

// detectCmd reports the spacing and seasonality of the series
func detectCmd() *cobra.Command {
	var seasonality string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the inferred spacing and seasonal period of a series",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := forecast.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			raw, err := readInput()
			if err != nil {
				return err
			}
			season, err := forecast.ParseSeasonality(seasonality)
			if err != nil {
				return err
			}

			report, err := detect(raw, cfg, season)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&seasonality, "seasonality", "auto", "Seasonality override: auto, yes or no")
	return cmd
}

type detectReport struct {
	Points          int       `json:"points"`
	First           time.Time `json:"first"`
	Last            time.Time `json:"last"`
	Step            string    `json:"step"`
	Seasonal        bool      `json:"seasonal"`
	Period          int       `json:"period,omitempty"`
	Autocorrelation float64   `json:"autocorrelation,omitempty"`
	Differencing    int       `json:"differencing"`
}

func detect(raw []timeseries.RawPoint, cfg forecast.Config, override forecast.Seasonality) (*detectReport, error) {
	series, err := timeseries.Prepare(raw)
	if err != nil {
		return nil, err
	}

	s := stats.DetectSeasonality(series, stats.SeasonalityOptions{
		Hint:      override.Hint(),
		Threshold: cfg.Seasonality.Threshold,
		MinLag:    cfg.Seasonality.MinLag,
	})

	return &detectReport{
		Points:          series.Len(),
		First:           series.Timestamps[0],
		Last:            series.Timestamps[series.Len()-1],
		Step:            timeseries.InferStep(series.Timestamps).String(),
		Seasonal:        s.Detected,
		Period:          s.Period,
		Autocorrelation: s.Autocorrelation,
		Differencing:    stats.SelectDifferencing(series.Values),
	}, nil
}

func readInput() ([]timeseries.RawPoint, error) {
	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = dateColumn
	opts.ValueColumn = valueColumn
	opts.IDColumn = idColumn
	opts.IDFilter = idFilter
	if delimiter != "" {
		opts.Delimiter = []rune(delimiter)[0]
	}

	raw, err := timeseries.LoadCSV(csvFile, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", csvFile, err)
	}
	return raw, nil
}

func newLogger(cfg forecast.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

func writeFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return writeJSON(f, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
