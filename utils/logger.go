package utils

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger builds the process-wide sugared logger. Production encoding by
// default; set LOG_MODE=dev for console output during local work.
func InitLogger() {
	var (
		base *zap.Logger
		err  error
	)
	if os.Getenv("LOG_MODE") == "dev" {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Log = base.Sugar()
}

// Logger returns the shared logger, initializing a default one if InitLogger
// was never called (tests).
func Logger() *zap.SugaredLogger {
	if Log == nil {
		InitLogger()
	}
	return Log
}
