//go:build windows

package cmd

import (
	sharedcommon "github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/logger"
)

// platformLoggers adds the Windows Event Log when the source is registered.
func platformLoggers() []logger.Logger {
	el, err := logger.NewEventLogger(sharedcommon.AppName)
	if err != nil {
		return nil
	}
	return []logger.Logger{el}
}
