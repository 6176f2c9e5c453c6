package main

import (
	"os"

	"ReceiptLedger/internal/app"
	"ReceiptLedger/internal/cli"
	"ReceiptLedger/internal/config"
	"ReceiptLedger/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := cli.New(application).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
