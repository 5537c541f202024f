package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
)

func stopDaemon(ctx *cli.Context) error {
	if client, err := newClient(); err == nil {
		cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		err = client.StopDaemon(cctx)
		client.Close()
		if err == nil {
			fmt.Println("Daemon stopped successfully")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Stop request failed: %v, falling back to PID file\n", err)
	}

	pid, err := ReadPidFile()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Daemon is not running (PID file not found)")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error reading PID file: %v\n", err)
		return errFailed
	}
	if !isProcessRunning(pid) {
		fmt.Println("Daemon is not running (removing stale PID file)")
		_ = RemovePidFile()
		return nil
	}

	fmt.Printf("Stopping daemon (PID %d)...\n", pid)
	if err := killDaemon(pid); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping daemon: %v\n", err)
		return errFailed
	}
	// the daemon removes its own PID file on exit
	fmt.Println("Daemon stopped successfully")
	return nil
}

// waitForExit polls until pid is gone, reporting false once timeout passes.
func waitForExit(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for isProcessRunning(pid) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(killPollInterval)
	}
	return true
}
