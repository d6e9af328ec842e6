package logger_test

import (
	"github.com/Krishiv14/EarningsAgent/pkg/config"
	"github.com/Krishiv14/EarningsAgent/pkg/logger"
)

// Example demonstrates basic logger usage
func Example() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.Info("server starting")
	log.WithField("ticker", "TCS").Info("analysis requested")
	log.Infof("watchlist sweep finished: %d tickers", 8)
}

// Example_componentLogger shows passing the underlying zerolog.Logger
// to a component that tags its own entries
func Example_componentLogger() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	zl := log.Zerolog().With().Str("component", "delta").Logger()
	zl.Debug().Str("ticker", "INFY").Msg("verdict computed")
}
