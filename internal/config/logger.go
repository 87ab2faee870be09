package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func (c LoggingConfig) validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("logging format %q: want json or console", c.Format)
	}
	return nil
}

// Logger builds the zap logger for the entrypoints. The board is drawn on
// stdout, so logs go to stderr unless Output names other sinks.
func (c LoggingConfig) Logger() (*zap.Logger, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(c.Level)

	var zapCfg zap.Config
	if c.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	outputs := []string{"stderr"}
	if c.Output != "" {
		outputs = strings.Split(c.Output, ",")
		for i := range outputs {
			outputs[i] = strings.TrimSpace(outputs[i])
		}
	}
	zapCfg.OutputPaths = outputs
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
