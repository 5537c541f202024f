package cmd

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	sharedcommon "github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/internal/api"
	"github.com/waw666waw666/reminder/internal/notify"
	"github.com/waw666waw666/reminder/internal/scheduler"
	"github.com/waw666waw666/reminder/internal/server"
	"github.com/waw666waw666/reminder/internal/store"
	"github.com/waw666waw666/reminder/pkg/logger"
)

// daemonOptions are the settings the daemon command collects from flags.
type daemonOptions struct {
	StoreKind    string
	PollInterval time.Duration
	Debug        bool
	Fs           afero.Fs
	// Notifier overrides the platform notifier when set.
	Notifier notify.Notifier
}

// DaemonComponents holds all initialized daemon components.
type DaemonComponents struct {
	Store     store.Store
	Notifier  notify.Notifier
	Scheduler *scheduler.Scheduler
	Api       *api.Api
	Server    *server.Server
	logger    logger.Logger
}

// Close releases all daemon component resources in reverse order of
// initialization and returns every error encountered.
func (c *DaemonComponents) Close() error {
	var result *multierror.Error
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Api != nil {
		if err := c.Api.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.Notifier != nil {
		if err := notify.Close(c.Notifier); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.logger != nil {
		c.logger.Info("Daemon stopped")
	}
	return result.ErrorOrNil()
}

// initDaemonComponents wires store, notifier, scheduler, API and server.
// shutdown is invoked when a client sends daemon.stop.
//
// On error, any partially initialized components are cleaned up before
// returning.
var initDaemonComponents = func(ctx context.Context, log logger.Logger, opts *daemonOptions, shutdown func()) (*DaemonComponents, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	st, err := store.Open(opts.StoreKind, fs, log)
	if err != nil {
		log.Error("Task store initialization failed: %v", err)
		return nil, err
	}

	sink := opts.Notifier
	if sink == nil {
		sink = notify.Default(log)
	}

	sched := scheduler.New(scheduler.Config{
		PollInterval: opts.PollInterval,
		Source:       sharedcommon.AppName,
	}, sink, log)

	a := api.NewApi(log, st, sched)
	if _, err := a.Load(ctx); err != nil {
		log.Error("Loading tasks failed: %v", err)
		_ = a.Close()
		_ = notify.Close(sink)
		return nil, err
	}

	serv := server.NewServer(log, a, &server.Config{
		Version:   currentBuildArgs.Version,
		Commit:    currentBuildArgs.Commit,
		BuildType: currentBuildArgs.BuildType,
		Debug:     opts.Debug,
	}, shutdown)

	return &DaemonComponents{
		Store:     st,
		Notifier:  sink,
		Scheduler: sched,
		Api:       a,
		Server:    serv,
		logger:    log,
	}, nil
}
