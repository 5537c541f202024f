package cmd

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/waw666waw666/reminder/cmd/common"
	sharedcommon "github.com/waw666waw666/reminder/common"
	daemonpkg "github.com/waw666waw666/reminder/internal/daemon"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

var (
	pollInterval time.Duration
	daemonDebug  bool

	daemonFlags = []cli.Flag{
		cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "how often reminders are checked",
			Value:       sharedcommon.PollInterval(),
			EnvVar:      sharedcommon.PollIntervalEnv,
			Destination: &pollInterval,
		},
		cli.BoolFlag{
			Name:        "debug, d",
			Usage:       "log every control request",
			Destination: &daemonDebug,
		},
	}
)

func daemon(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	l, err := newDaemonLogger()
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "open_log", err)
		return errFailed
	}
	defer l.Close()

	if err := acquirePidFile(); err != nil {
		l.Error("Cannot start daemon: %v", err)
		common.PrintRuntimeErr(ctx, "daemon", "pid_file", err)
		return errFailed
	}
	defer RemovePidFile()

	if err := runDaemon(l, &daemonOptions{
		StoreKind:    storeKind,
		PollInterval: pollInterval,
		Debug:        daemonDebug,
		Fs:           afero.NewOsFs(),
	}); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "run", err)
		return errFailed
	}
	return nil
}

// runDaemon initialises the components and blocks until a signal or a
// daemon.stop request ends them.
func runDaemon(l logger.Logger, opts *daemonOptions) error {
	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	var runner *daemonpkg.Runner
	stop := func() {
		if err := runner.Shutdown(); err != nil && !errors.Is(err, daemonpkg.ErrNotRunning) {
			l.Warning("Shutdown: %v", err)
		}
	}
	dc, err := initDaemonComponents(sigCtx, l, opts, stop)
	if err != nil {
		return err
	}
	runner = daemonpkg.New(nil, l, dc.Scheduler, dc.Server)

	l.Info("Config directory: %s", remind.ConfigDir)
	runErr := runner.Start(sigCtx)
	if err := dc.Close(); err != nil {
		l.Error("Cleanup failed: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// newDaemonLogger logs to the console and to error.log, plus any platform
// log such as the Windows Event Log.
func newDaemonLogger() (logger.Logger, error) {
	fl, err := logger.NewFileLogger(remind.LogFile())
	if err != nil {
		return nil, err
	}
	loggers := []logger.Logger{
		logger.NewStandardLogger(log.New(os.Stderr, "", log.LstdFlags)),
		fl,
	}
	loggers = append(loggers, platformLoggers()...)
	return logger.NewMultiLogger(loggers...), nil
}
