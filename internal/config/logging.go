package config

import "go.uber.org/zap"

// SetupLogging builds the zap logger and installs it as the global logger.
// Services log through zap.S().
func SetupLogging(cfg *Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsDev() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
