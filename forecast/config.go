package forecast

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goforecast/arima"
	"github.com/sartorproj/goforecast/expsmooth"
	"github.com/sartorproj/goforecast/stats"
)

// Environment overrides applied by LoadConfig.
const (
	EnvLogLevel = "GOFORECAST_LOG_LEVEL"
	EnvParallel = "GOFORECAST_PARALLEL"
)

// Config holds engine-wide defaults.
type Config struct {
	LogLevel       string `yaml:"log_level"`
	DefaultPeriods int    `yaml:"default_periods"`
	Parallel       bool   `yaml:"parallel"`

	Seasonality struct {
		Threshold float64 `yaml:"threshold"`
		MinLag    int     `yaml:"min_lag"`
	} `yaml:"seasonality"`

	Smoothing struct {
		Optimize       bool    `yaml:"optimize"`
		Alpha          float64 `yaml:"alpha"`
		Beta           float64 `yaml:"beta"`
		Gamma          float64 `yaml:"gamma"`
		TrendThreshold float64 `yaml:"trend_threshold"`
	} `yaml:"smoothing"`

	ARIMA struct {
		P                int  `yaml:"p"`
		D                int  `yaml:"d"`
		Q                int  `yaml:"q"`
		AutoDifferencing bool `yaml:"auto_differencing"`
		MAIterations     int  `yaml:"ma_iterations"`
	} `yaml:"arima"`

	Accuracy struct {
		HoldoutMinPoints int     `yaml:"holdout_min_points"`
		HoldoutFraction  float64 `yaml:"holdout_fraction"`
		Epsilon          float64 `yaml:"epsilon"`
	} `yaml:"accuracy"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	var c Config
	c.LogLevel = "warn"
	c.DefaultPeriods = 12
	c.Parallel = true

	c.Seasonality.Threshold = stats.DefaultSeasonalityThreshold
	c.Seasonality.MinLag = stats.DefaultMinSeasonalLag

	p := expsmooth.DefaultParams()
	c.Smoothing.Optimize = p.Optimize
	c.Smoothing.Alpha = p.Alpha
	c.Smoothing.Beta = p.Beta
	c.Smoothing.Gamma = p.Gamma
	c.Smoothing.TrendThreshold = 0.5

	c.ARIMA.P, c.ARIMA.D, c.ARIMA.Q = 1, 1, 1
	c.ARIMA.AutoDifferencing = true
	c.ARIMA.MAIterations = arima.DefaultMAIterations

	c.Accuracy.HoldoutMinPoints = 6
	c.Accuracy.HoldoutFraction = 0.2
	c.Accuracy.Epsilon = 1e-9
	return c
}

// LoadConfig reads a YAML file over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	if v := getEnv(EnvParallel, ""); v != "" {
		parallel, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvParallel, v, err)
		}
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.DefaultPeriods < 1 {
		return fmt.Errorf("default_periods must be positive, got %d", c.DefaultPeriods)
	}
	if c.Seasonality.Threshold <= 0 || c.Seasonality.Threshold >= 1 {
		return fmt.Errorf("seasonality.threshold must be in (0,1), got %v", c.Seasonality.Threshold)
	}
	if c.Seasonality.MinLag < 2 {
		return fmt.Errorf("seasonality.min_lag must be at least 2, got %d", c.Seasonality.MinLag)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"smoothing.alpha", c.Smoothing.Alpha},
		{"smoothing.beta", c.Smoothing.Beta},
		{"smoothing.gamma", c.Smoothing.Gamma},
	} {
		if f.value <= 0 || f.value >= 1 {
			return fmt.Errorf("%s must be in (0,1), got %v", f.name, f.value)
		}
	}
	if c.Smoothing.TrendThreshold < 0 || c.Smoothing.TrendThreshold > 1 {
		return fmt.Errorf("smoothing.trend_threshold must be in [0,1], got %v", c.Smoothing.TrendThreshold)
	}
	if c.ARIMA.P < 0 || c.ARIMA.D < 0 || c.ARIMA.Q < 0 {
		return fmt.Errorf("arima orders must be non-negative, got (%d,%d,%d)", c.ARIMA.P, c.ARIMA.D, c.ARIMA.Q)
	}
	if c.ARIMA.MAIterations < 1 {
		return fmt.Errorf("arima.ma_iterations must be positive, got %d", c.ARIMA.MAIterations)
	}
	if c.Accuracy.HoldoutMinPoints < 2 {
		return fmt.Errorf("accuracy.holdout_min_points must be at least 2, got %d", c.Accuracy.HoldoutMinPoints)
	}
	if c.Accuracy.HoldoutFraction <= 0 || c.Accuracy.HoldoutFraction >= 1 {
		return fmt.Errorf("accuracy.holdout_fraction must be in (0,1), got %v", c.Accuracy.HoldoutFraction)
	}
	if c.Accuracy.Epsilon <= 0 {
		return fmt.Errorf("accuracy.epsilon must be positive, got %v", c.Accuracy.Epsilon)
	}
	return nil
}

func (c Config) smoothingParams() expsmooth.Params {
	return expsmooth.Params{
		Alpha:    c.Smoothing.Alpha,
		Beta:     c.Smoothing.Beta,
		Gamma:    c.Smoothing.Gamma,
		Optimize: c.Smoothing.Optimize,
	}
}

// newLogger builds the default stderr logger at the configured level.
func (c Config) newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
