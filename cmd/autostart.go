package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
	"github.com/waw666waw666/reminder/cmd/common"
	"github.com/waw666waw666/reminder/internal/autostart"
)

// executable is replaced in tests.
var executable = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

func autostartEnable(ctx *cli.Context) error {
	exe, err := executable()
	if err != nil {
		common.PrintRuntimeErr(ctx, "autostart", "executable", err)
		return errFailed
	}
	if err := autostart.Enable(exe); err != nil {
		printAutostartErr(ctx, "enable", err)
		return errFailed
	}
	fmt.Printf("Autostart enabled: %s\n", autostart.Command(exe))
	return nil
}

func autostartDisable(ctx *cli.Context) error {
	if err := autostart.Disable(); err != nil {
		printAutostartErr(ctx, "disable", err)
		return errFailed
	}
	fmt.Println("Autostart disabled")
	return nil
}

func autostartStatus(ctx *cli.Context) error {
	on, err := autostart.Enabled()
	if err != nil {
		printAutostartErr(ctx, "status", err)
		return errFailed
	}
	if on {
		fmt.Println("Autostart is enabled")
	} else {
		fmt.Println("Autostart is disabled")
	}
	return nil
}

func printAutostartErr(ctx *cli.Context, action string, err error) {
	if errors.Is(err, autostart.ErrUnsupported) {
		fmt.Println(err.Error())
		return
	}
	common.PrintRuntimeErr(ctx, "autostart", action, err)
}
