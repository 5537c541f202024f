package remindcli

import (
	"log"
	"os"

	"github.com/waw666waw666/reminder/common"
)

// debugMode returns true if REMINDER_DEBUG=1
func debugMode() bool {
	return os.Getenv(common.DebugEnv) == "1"
}

// debugLog logs only if debugMode() is true
func debugLog(format string, args ...any) {
	if debugMode() {
		log.Printf(format, args...)
	}
}
