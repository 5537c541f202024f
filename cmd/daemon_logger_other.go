//go:build !windows

package cmd

import "github.com/waw666waw666/reminder/pkg/logger"

func platformLoggers() []logger.Logger { return nil }
