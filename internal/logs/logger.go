package logs

import (
	"log"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// Init builds the process-wide logger. Call once from main before
// anything that logs.
func Init() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// L never returns nil so packages can log during tests without Init.
func L() *zap.Logger {
	if Logger == nil {
		Logger = zap.NewNop()
	}
	return Logger
}
