package utils

import (
	"fmt"

	"go.uber.org/zap"
)

// SetupLogger creates and configures a zap logger for the application.
// If debug is true, it uses development mode; otherwise production mode.
func SetupLogger(debug bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create logger (debug: %t): %w", debug, err)
	}
	return logger, nil
}
