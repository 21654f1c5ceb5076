// Package logging builds the process logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Setup builds a logger for the process and installs it globally. Debug mode
// uses the development config; otherwise the production config is used, with
// a console encoder when stderr is a terminal.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	cfg := Config(debug, term.IsTerminal(int(os.Stderr.Fd())))
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}

// Config returns the zap configuration for the given mode.
func Config(debug, interactive bool) zap.Config {
	if debug {
		return zap.NewDevelopmentConfig()
	}
	cfg := zap.NewProductionConfig()
	if interactive {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg
}
