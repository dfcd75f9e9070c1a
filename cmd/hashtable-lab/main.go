package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lojhan/hashtable-lab/internal/lab"
	"github.com/lojhan/hashtable-lab/internal/logging"
	"github.com/lojhan/hashtable-lab/internal/store"
)

func main() {
	size := flag.Int("size", store.DefaultSize, "Number of hash table buckets")
	logLevel := flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	logFile := flag.String("logfile", "", "Log file path (empty = stderr)")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	logCfg.Level = *logLevel
	logCfg.File = *logFile

	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	report, err := lab.Run(os.Stdout, *size, logger)
	if err != nil {
		logger.Error("lab failed", zap.Error(err), zap.Int("checks", report.Checks), zap.Int("failed", report.Failed))
		_ = logger.Sync()
		os.Exit(1)
	}
}
