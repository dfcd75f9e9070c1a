package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lojhan/hashtable-lab/internal/command"
	"github.com/lojhan/hashtable-lab/internal/logging"
	"github.com/lojhan/hashtable-lab/internal/server"
	"github.com/lojhan/hashtable-lab/internal/store"
)

func main() {
	port := flag.String("port", server.DefaultPort, "Port to listen on")
	size := flag.Int("size", store.DefaultSize, "Number of hash table buckets")
	logLevel := flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	logFile := flag.String("logfile", "", "Log file path (empty = stderr)")
	logMaxSize := flag.Int("logmaxsize", 100, "Maximum log file size in megabytes before rotation")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	logCfg.Level = *logLevel
	logCfg.File = *logFile
	logCfg.MaxSizeMB = *logMaxSize
	logCfg.Console = *logFile == ""

	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	zap.ReplaceGlobals(logger)

	if err := run(logger, *port, *size); err != nil {
		logger.Error("server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, port string, size int) (err error) {
	dataStore, err := store.NewStore(size, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(logger)
	command.Register(srv, dataStore)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting hash table server", zap.String("port", port), zap.Int("buckets", size))
		return srv.Start(":" + port)
	})

	g.Go(func() error {
		<-ctx.Done()
		select {
		case <-srv.Booted():
		default:
			return nil
		}
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	defer func() {
		err = multierr.Append(err, ignoreSyncErr(logger.Sync()))
	}()

	return g.Wait()
}

// ignoreSyncErr drops the error zap reports when syncing a terminal.
func ignoreSyncErr(err error) error {
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
